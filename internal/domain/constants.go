package domain

const (
	PathEmpty       = ""
	PathCurrent     = "."
	PathRoot        = "/"
	PathSeparator   = "/"
	PathParent      = ".."
)

// InputField names a user input that is reset after a successful mutation.
type InputField string

const (
	InputFolderName InputField = "new-folder-name"
	InputFilePicker InputField = "file-input"
)

// ListingStatus is the state of the most recent listing request.
type ListingStatus int

const (
	StatusIdle ListingStatus = iota
	StatusLoading
	StatusRendered
	StatusErrored
)

func (s ListingStatus) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusRendered:
		return "rendered"
	case StatusErrored:
		return "errored"
	default:
		return "idle"
	}
}
