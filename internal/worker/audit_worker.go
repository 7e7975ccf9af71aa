package worker

import (
	"github.com/spec-kit/growid-bridge/internal/service"
)

// StartAuditWorker registers credential audit handlers.
func StartAuditWorker(auditService *service.AuditService) {
	if auditService == nil {
		return
	}
	auditService.RegisterHandlers()
}
