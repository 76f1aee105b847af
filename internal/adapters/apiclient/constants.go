package apiclient

const (
	HeaderRequestedWith      = "X-Requested-With"
	HeaderRequestID          = "X-Request-ID"
	HeaderContentType        = "Content-Type"
	HeaderContentDisposition = "Content-Disposition"
	RequestedWithXHR         = "XMLHttpRequest"
	ContentTypeForm          = "application/x-www-form-urlencoded"
	FormParamPath            = "path"
	FormParamFolderName      = "folder_name"
	FormParamParentPath      = "parent_path"
	FormParamFile            = "file"
	FormParamCurrentPath     = "current_path"
	FormParamPassword        = "password"
	FormParamFilePath        = "filepath"
	ErrorBodyField           = "error"
	OperationList            = "list"
	OperationCreateFolder    = "create_folder"
	OperationUpload          = "upload"
	OperationDelete          = "delete"
	OperationDownload        = "download"
	LogRequestFailed         = "Request failed"
	LogDownloadSaved         = "Download saved"
	maxErrorBodySize         = 64 << 10
)
