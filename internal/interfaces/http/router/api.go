package router

import (
	"github.com/gin-gonic/gin"
	"github.com/realtyadmin/backend/internal/domain/identity"
	"github.com/realtyadmin/backend/internal/interfaces/http/handler"
	"github.com/realtyadmin/backend/internal/interfaces/http/middleware"
)

// Handlers holds every API handler the route tree dispatches to
type Handlers struct {
	Auth          *handler.AuthHandler
	User          *handler.UserHandler
	Owner         *handler.OwnerHandler
	Property      *handler.PropertyHandler
	Unit          *handler.UnitHandler
	FundReference *handler.FundReferenceHandler
	Voucher       *handler.VoucherHandler
	Ledger        *handler.LedgerHandler
	Employee      *handler.EmployeeHandler
	Leave         *handler.LeaveHandler
	Shift         *handler.ShiftHandler
	Tardiness     *handler.TardinessHandler
	HRReport      *handler.HRReportHandler
	Department    *handler.DepartmentHandler
	Position      *handler.PositionHandler
	Clearance     *handler.ClearanceHandler
	ActivityLog   *handler.ActivityLogHandler
	Export        *handler.ExportHandler
	Dashboard     *handler.DashboardHandler
}

// APIOptions carries route specific middleware
type APIOptions struct {
	// LoginGuard runs before the login handler, e.g. a rate limiter
	LoginGuard gin.HandlerFunc
}

var perm = middleware.RequirePermission

// RegisterAPI registers every domain group on r. Authentication is global;
// each route declares the permission it needs.
func RegisterAPI(r *Router, h Handlers, opts APIOptions) *Router {
	for _, g := range APIGroups(h, opts) {
		r.Register(g)
	}
	return r
}

// APIGroups builds the domain groups of the API
func APIGroups(h Handlers, opts APIOptions) []*DomainGroup {
	return []*DomainGroup{
		authGroup(h.Auth, opts),
		userGroup(h.User),
		ownerGroup(h.Owner),
		propertyGroup(h.Property),
		unitGroup(h.Unit),
		fundReferenceGroup(h.FundReference),
		voucherGroup(h.Voucher),
		ledgerGroup(h.Ledger),
		employeeGroup(h.Employee),
		leaveGroup(h.Leave, h.HRReport),
		shiftGroup(h.Shift),
		tardinessGroup(h.Tardiness, h.HRReport),
		departmentGroup(h.Department),
		positionGroup(h.Position),
		hierarchyGroup(h.Department),
		clearanceGroup(h.Clearance),
		activityLogGroup(h.ActivityLog),
		exportGroup(h.Export),
		dashboardGroup(h.Dashboard),
	}
}

func authGroup(h *handler.AuthHandler, opts APIOptions) *DomainGroup {
	g := NewDomainGroup("auth", "/auth")
	if opts.LoginGuard != nil {
		g.POST("/login", opts.LoginGuard, h.Login)
	} else {
		g.POST("/login", h.Login)
	}
	return g.
		POST("/refresh", h.RefreshToken).
		POST("/logout", h.Logout).
		GET("/me", h.GetCurrentUser).
		PUT("/password", h.ChangePassword)
}

func userGroup(h *handler.UserHandler) *DomainGroup {
	read, write := perm(identity.PermUserRead), perm(identity.PermUserWrite)
	return NewDomainGroup("users", "/users").
		GET("", read, h.List).
		GET("/roles", read, h.ListRoles).
		GET("/:id", read, h.GetByID).
		POST("", write, h.Create).
		PUT("/:id", write, h.Update).
		PUT("/:id/role", write, h.ChangeRole).
		PUT("/:id/password", write, h.ResetPassword).
		POST("/:id/activate", write, h.Activate).
		POST("/:id/deactivate", write, h.Deactivate)
}

func ownerGroup(h *handler.OwnerHandler) *DomainGroup {
	read, write := perm(identity.PermOwnerRead), perm(identity.PermOwnerWrite)
	return NewDomainGroup("owners", "/owners").
		GET("", read, h.List).
		GET("/:id", read, h.GetByID).
		POST("", write, h.Create).
		PUT("/:id", write, h.Update).
		POST("/:id/activate", write, h.Activate).
		POST("/:id/deactivate", write, h.Deactivate).
		DELETE("/:id", write, h.Delete)
}

func propertyGroup(h *handler.PropertyHandler) *DomainGroup {
	read, write := perm(identity.PermPropertyRead), perm(identity.PermPropertyWrite)
	return NewDomainGroup("properties", "/properties").
		GET("", read, h.List).
		GET("/:id", read, h.GetByID).
		POST("", write, h.Create).
		PUT("/:id", write, h.Update).
		PUT("/:id/status", write, h.SetStatus).
		POST("/:id/transfer", write, h.TransferOwnership).
		DELETE("/:id", write, h.Delete)
}

func unitGroup(h *handler.UnitHandler) *DomainGroup {
	read, write := perm(identity.PermUnitRead), perm(identity.PermUnitWrite)
	return NewDomainGroup("units", "/units").
		GET("", read, h.List).
		GET("/stats", read, h.Stats).
		GET("/:id", read, h.GetByID).
		POST("", write, h.Create).
		PUT("/:id", write, h.Update).
		POST("/:id/transition", write, h.Transition).
		DELETE("/:id", write, h.Delete)
}

func fundReferenceGroup(h *handler.FundReferenceHandler) *DomainGroup {
	read, write := perm(identity.PermFundReferenceRead), perm(identity.PermFundReferenceWrite)
	return NewDomainGroup("fund-references", "/fund-references").
		GET("", read, h.List).
		GET("/:id", read, h.GetByID).
		POST("", write, h.Create).
		PUT("/:id", write, h.Update).
		POST("/:id/activate", write, h.Activate).
		POST("/:id/deactivate", write, h.Deactivate).
		DELETE("/:id", write, h.Delete)
}

func voucherGroup(h *handler.VoucherHandler) *DomainGroup {
	read, write := perm(identity.PermVoucherSeriesRead), perm(identity.PermVoucherSeriesWrite)
	return NewDomainGroup("voucher-series", "/voucher-series").
		GET("", read, h.List).
		GET("/:id", read, h.GetByID).
		POST("", write, h.Create).
		PUT("/:id", write, h.Update).
		POST("/:id/activate", write, h.Activate).
		POST("/:id/deactivate", write, h.Deactivate).
		POST("/:id/issue", perm(identity.PermVoucherIssue), h.Issue).
		DELETE("/:id", write, h.Delete)
}

func ledgerGroup(h *handler.LedgerHandler) *DomainGroup {
	return NewDomainGroup("ledger", "/ledger").
		GET("", perm(identity.PermLedgerRead), h.View).
		POST("/entries", perm(identity.PermLedgerPost), h.Post)
}

func employeeGroup(h *handler.EmployeeHandler) *DomainGroup {
	read, write := perm(identity.PermEmployeeRead), perm(identity.PermEmployeeWrite)
	return NewDomainGroup("employees", "/employees").
		GET("", read, h.List).
		GET("/:id", read, h.GetByID).
		POST("", write, h.Create).
		PUT("/:id", write, h.Update).
		POST("/:id/resign", write, h.Resign).
		POST("/:id/terminate", write, h.Terminate).
		DELETE("/:id", write, h.Delete)
}

func leaveGroup(h *handler.LeaveHandler, reports *handler.HRReportHandler) *DomainGroup {
	read, write, approve := perm(identity.PermLeaveRead), perm(identity.PermLeaveWrite), perm(identity.PermLeaveApprove)
	return NewDomainGroup("leaves", "/leaves").
		GET("", read, h.List).
		GET("/summary", read, reports.LeaveSummary).
		GET("/pending-count", read, h.Pending).
		GET("/:id", read, h.GetByID).
		POST("", write, h.File).
		POST("/:id/cancel", write, h.Cancel).
		POST("/:id/approve", approve, h.Approve).
		POST("/:id/reject", approve, h.Reject)
}

func shiftGroup(h *handler.ShiftHandler) *DomainGroup {
	read, write := perm(identity.PermShiftRead), perm(identity.PermShiftWrite)
	return NewDomainGroup("shift-schedules", "/shift-schedules").
		GET("", read, h.List).
		GET("/:id", read, h.GetByID).
		POST("", write, h.Create).
		PUT("/:id", write, h.Update).
		POST("/:id/activate", write, h.Activate).
		POST("/:id/deactivate", write, h.Deactivate).
		DELETE("/:id", write, h.Delete)
}

func tardinessGroup(h *handler.TardinessHandler, reports *handler.HRReportHandler) *DomainGroup {
	read, write := perm(identity.PermTardinessRead), perm(identity.PermTardinessWrite)
	return NewDomainGroup("tardiness", "/tardiness").
		GET("", read, h.List).
		GET("/summary", read, reports.TardinessSummary).
		GET("/:id", read, h.GetByID).
		POST("", write, h.Record).
		PUT("/:id", write, h.Correct).
		DELETE("/:id", write, h.Delete)
}

func departmentGroup(h *handler.DepartmentHandler) *DomainGroup {
	read, write := perm(identity.PermOrganizationRead), perm(identity.PermOrganizationWrite)
	return NewDomainGroup("departments", "/departments").
		GET("", read, h.List).
		GET("/:id", read, h.GetByID).
		POST("", write, h.Create).
		POST("/reorder", write, h.Reorder).
		PUT("/:id", write, h.Update).
		POST("/:id/activate", write, h.Activate).
		POST("/:id/deactivate", write, h.Deactivate).
		POST("/:id/move", write, h.Move).
		DELETE("/:id", write, h.Delete)
}

func positionGroup(h *handler.PositionHandler) *DomainGroup {
	read, write := perm(identity.PermOrganizationRead), perm(identity.PermOrganizationWrite)
	return NewDomainGroup("positions", "/positions").
		GET("", read, h.List).
		GET("/:id", read, h.GetByID).
		POST("", write, h.Create).
		PUT("/:id", write, h.Update).
		DELETE("/:id", write, h.Delete)
}

func hierarchyGroup(h *handler.DepartmentHandler) *DomainGroup {
	return NewDomainGroup("hierarchy", "/hierarchy").
		GET("", perm(identity.PermOrganizationRead), h.Hierarchy)
}

func clearanceGroup(h *handler.ClearanceHandler) *DomainGroup {
	read, write := perm(identity.PermClearanceRead), perm(identity.PermClearanceWrite)
	g := NewDomainGroup("clearance", "/clearance")
	g.Group("drafts", "/drafts").
		POST("", write, h.OpenDraft).
		GET("/:draft_id", write, h.GetDraft).
		DELETE("/:draft_id", write, h.CloseDraft).
		POST("/:draft_id/tasks", write, h.AddTask).
		PUT("/:draft_id/tasks/:task_id", write, h.UpdateTask).
		DELETE("/:draft_id/tasks/:task_id", write, h.RemoveTask).
		POST("/:draft_id/move", write, h.MoveTask).
		POST("/:draft_id/save", write, h.SaveDraft).
		POST("/:draft_id/discard", write, h.DiscardDraft).
		POST("/:draft_id/switch", write, h.SwitchDepartment)
	g.Group("templates", "/templates").
		GET("", read, h.ListTemplates).
		GET("/:department_id", read, h.GetTemplate).
		DELETE("/:department_id", write, h.DeleteTemplate)
	g.Group("clearances", "/clearances").
		GET("", read, h.List).
		GET("/open-count", read, h.OpenCount).
		GET("/:id", read, h.GetByID).
		POST("", write, h.Start).
		POST("/:id/tasks/:task_id/complete", write, h.CompleteTask).
		POST("/:id/tasks/:task_id/reopen", write, h.ReopenTask).
		POST("/:id/cancel", write, h.Cancel)
	return g
}

func activityLogGroup(h *handler.ActivityLogHandler) *DomainGroup {
	return NewDomainGroup("activity-logs", "/activity-logs").
		GET("", perm(identity.PermActivityLogRead), h.List)
}

func exportGroup(h *handler.ExportHandler) *DomainGroup {
	create := perm(identity.PermExportCreate)
	return NewDomainGroup("exports", "/exports").
		GET("/activity-logs.pdf", create, perm(identity.PermActivityLogRead), h.ActivityPDF).
		GET("/leave-summary.xlsx", create, perm(identity.PermLeaveRead), h.LeaveSummaryXLSX).
		GET("/tardiness-summary.xlsx", create, perm(identity.PermTardinessRead), h.TardinessSummaryXLSX)
}

func dashboardGroup(h *handler.DashboardHandler) *DomainGroup {
	read := perm(identity.PermDashboardRead)
	return NewDomainGroup("dashboard", "/dashboard").
		GET("", read, h.Summary).
		GET("/widgets/:name", read, h.GetWidget).
		PUT("/widgets/:name", read, h.SaveWidget)
}
