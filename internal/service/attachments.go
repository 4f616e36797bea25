package service

// AttachmentResolver turns a stored attachment reference into a link for report cells.
type AttachmentResolver interface {
	URL(ref string) string
}

type passthroughAttachments struct{}

func (passthroughAttachments) URL(ref string) string {
	return ref
}
