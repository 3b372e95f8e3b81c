package auth

// Permission codes gate route groups. Admin users bypass the check via
// the IsAdmin claim; supervisors carry exactly SupervisorPermissions.
const (
	PermCatalogManage     = "catalog:manage"
	PermReceiptCreate     = "document:receipt:create"
	PermReceiptRead       = "document:receipt:read"
	PermReceiptDelete     = "document:receipt:delete"
	PermReportRead        = "report:read"
	PermReportRangeDelete = "report:range_delete"
	PermUploadImage       = "upload:image"
	PermDashboardRead     = "dashboard:read"
)

// AllPermissions lists every permission code, with resource/action split
// for seeding.
func AllPermissions() []Permission {
	return []Permission{
		{Code: PermCatalogManage, Name: "Manage catalogs", Resource: "catalog", Action: "manage"},
		{Code: PermReceiptCreate, Name: "Create receipts", Resource: "receipt", Action: "create"},
		{Code: PermReceiptRead, Name: "Read receipts", Resource: "receipt", Action: "read"},
		{Code: PermReceiptDelete, Name: "Delete receipts", Resource: "receipt", Action: "delete"},
		{Code: PermReportRead, Name: "Read reports", Resource: "report", Action: "read"},
		{Code: PermReportRangeDelete, Name: "Range-delete receipts", Resource: "report", Action: "range_delete"},
		{Code: PermUploadImage, Name: "Upload images", Resource: "upload", Action: "create"},
		{Code: PermDashboardRead, Name: "Read dashboard", Resource: "dashboard", Action: "read"},
	}
}

// SupervisorPermissions is the permission set granted to the supervisor
// role: record and read production, view reports and the dashboard.
func SupervisorPermissions() []string {
	return []string{
		PermReceiptCreate,
		PermReceiptRead,
		PermReportRead,
		PermDashboardRead,
	}
}
