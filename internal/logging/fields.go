package logging

// Shared key names for structured log fields, sorted alphabetically.
const (
	FieldBuilt              = "built"
	FieldCommit             = "commit"
	FieldContentType        = "content_type"
	FieldDescription        = "description"
	FieldDiagnosticsFixable = "diagnostics_fixable"
	FieldDiagnosticsTotal   = "diagnostics_total"
	FieldDryRun             = "dry_run"
	FieldError              = "error"
	FieldFiles              = "files"
	FieldFilesDiscovered    = "files_discovered"
	FieldFilesModified      = "files_modified"
	FieldFilesProcessed     = "files_processed"
	FieldFilesWithIssues    = "files_with_issues"
	FieldFix                = "fix"
	FieldFixable            = "fixable"
	FieldJobs               = "jobs"
	FieldPath               = "path"
	FieldPaths              = "paths"
	FieldSeverity           = "severity"
	FieldVersion            = "version"
	FieldWorkingDir         = "working_dir"
)
