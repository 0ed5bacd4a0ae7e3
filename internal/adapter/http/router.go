package http

import (
	"github.com/labstack/echo/v4"
)

// Routes groups every handler the API serves. Sandbox may be nil.
type Routes struct {
	Health  *Handler
	Loans   *LoanHandler
	Sandbox *SandboxHandler
}

// Register mounts the API on e. mw runs on the mutating loan and sandbox
// routes only (idempotency).
func Register(e *echo.Echo, r Routes, mw ...echo.MiddlewareFunc) {
	e.GET("/health", r.Health.Health)
	e.GET("/interest", r.Loans.CalcInterest)

	g := e.Group("/loans", mw...)
	g.POST("", r.Loans.CreateLoan)
	g.GET("/:loan_id", r.Loans.GetLoan)
	g.GET("/:loan_id/status", r.Loans.GetLoanStatus)
	g.GET("/:loan_id/lenders", r.Loans.GetLoanLenders)
	g.GET("/:loan_id/lenders/:lender", r.Loans.GetLoanLenderAmount)
	g.GET("/:loan_id/events", r.Loans.ListLoanEvents)

	g.POST("/:loan_id/cancel", r.Loans.CancelLoan)
	g.PUT("/:loan_id/participation", r.Loans.UpdateParticipation)
	g.DELETE("/:loan_id/participation", r.Loans.CancelParticipation)
	g.POST("/:loan_id/claim-tokens", r.Loans.ClaimLoanedTokens)
	g.POST("/:loan_id/return", r.Loans.ReturnLoan)
	g.POST("/:loan_id/liquidate", r.Loans.LiquidateCollateral)
	g.POST("/:loan_id/claim-auction", r.Loans.ClaimAuction)
	g.POST("/:loan_id/claim-returns", r.Loans.ClaimLoanedReturns)

	if r.Sandbox == nil {
		return
	}
	s := e.Group("/sandbox", mw...)
	s.POST("/assets/mint", r.Sandbox.MintAssets)
	s.POST("/assets/approve", r.Sandbox.ApproveAssets)
	s.GET("/assets/:address", r.Sandbox.Balance)
	s.POST("/items/mint", r.Sandbox.MintItem)
	s.POST("/items/approve", r.Sandbox.ApproveItem)
	s.GET("/items/:registry/:item_id", r.Sandbox.Item)
	s.POST("/auctions/:auction_id/finish", r.Sandbox.FinishAuction)
}
