package dto

type PDFInput struct {
	OutPath string
}

type PDFOutput struct {
	Path    string
	Pages   int
	Courses int
}

type CalendarInput struct {
	Open bool
}

type CalendarLink struct {
	CourseName string
	URL        string
	Opened     bool
	Error      string
}

type CalendarOutput struct {
	Links []CalendarLink
}
