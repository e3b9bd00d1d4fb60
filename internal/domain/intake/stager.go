package intake

// MaxAttachments bounds the staged file list.
const MaxAttachments = 5

// Attachment is a file selected by the visitor but not uploaded yet.
type Attachment struct {
	Name        string
	ContentType string
	Content     []byte
}

// Stager holds staged attachments in selection order.
type Stager struct {
	files []Attachment
}

func NewStager() *Stager {
	return &Stager{}
}

// AddFiles appends the selection and keeps only the first MaxAttachments
// entries of the combined list. Excess files are dropped without error.
// It returns how many of the selection were kept.
func (s *Stager) AddFiles(selection ...Attachment) int {
	before := len(s.files)
	combined := append(s.files, selection...)
	if len(combined) > MaxAttachments {
		combined = combined[:MaxAttachments]
	}
	s.files = combined
	return len(s.files) - before
}

// RemoveFile drops the entry at index and reports whether anything changed.
func (s *Stager) RemoveFile(index int) bool {
	if index < 0 || index >= len(s.files) {
		return false
	}
	s.files = append(s.files[:index:index], s.files[index+1:]...)
	return true
}

// Files returns a copy of the staged list.
func (s *Stager) Files() []Attachment {
	return append([]Attachment(nil), s.files...)
}

// Names returns the display names in order.
func (s *Stager) Names() []string {
	names := make([]string, len(s.files))
	for i, f := range s.files {
		names[i] = f.Name
	}
	return names
}

func (s *Stager) Len() int {
	return len(s.files)
}

// Size is the total number of staged bytes.
func (s *Stager) Size() int64 {
	var n int64
	for _, f := range s.files {
		n += int64(len(f.Content))
	}
	return n
}

// Remaining is how many more files can be staged.
func (s *Stager) Remaining() int {
	return MaxAttachments - len(s.files)
}

// Clear drops every staged file.
func (s *Stager) Clear() {
	s.files = nil
}
