package usecases

const (
	OperationList         = "list"
	OperationCreateFolder = "create_folder"
	OperationUpload       = "upload"
	OperationDelete       = "delete"
	OperationDownload     = "download"
	LogDirectoryListed    = "Directory listed"
	LogFolderCreated      = "Folder created"
	LogFileUploaded       = "File uploaded"
	LogFileDeleted        = "File deleted"
	LogDownloadStarted    = "Download started"
	LogStaleListing       = "Discarding superseded listing"
	BackLabel             = ".."
	QueryParamFilePath    = "filepath"
	QueryParamPassword    = "password"
)
