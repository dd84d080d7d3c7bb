package dto

// ExportRequest represents parameters for export requests
type ExportRequest struct {
	Format        string `form:"format,default=xlsx" json:"format" binding:"omitempty,oneof=xlsx csv json"`
	Provider      string `form:"provider" json:"provider"`
	IncludeFailed bool   `form:"include_failed" json:"include_failed"`
}
