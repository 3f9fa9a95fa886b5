package token

// Metadata is the shared metadata record of a series, propagated onto each
// token view at read time. Field layout follows the NEP-177 token metadata
// shape; all fields other than the title are optional.
type Metadata struct {
	Title         string  `json:"title,omitempty"`
	Description   string  `json:"description,omitempty"`
	Media         string  `json:"media,omitempty"`
	MediaHash     string  `json:"media_hash,omitempty"`
	Copies        *uint64 `json:"copies,omitempty"` // nil means unbounded supply
	IssuedAt      string  `json:"issued_at,omitempty"`
	ExpiresAt     string  `json:"expires_at,omitempty"`
	StartsAt      string  `json:"starts_at,omitempty"`
	UpdatedAt     string  `json:"updated_at,omitempty"`
	Extra         string  `json:"extra,omitempty"`
	Reference     string  `json:"reference,omitempty"`
	ReferenceHash string  `json:"reference_hash,omitempty"`
}

// Validate checks the metadata for series creation. The title is required;
// hash fields must not be set without the field they commit to.
func (m *Metadata) Validate() error {
	if m.Title == "" {
		return ErrTitleRequired
	}
	if m.MediaHash != "" && m.Media == "" {
		return ErrHashWithoutSubject
	}
	if m.ReferenceHash != "" && m.Reference == "" {
		return ErrHashWithoutSubject
	}
	return nil
}

// Copies returns a pointer to v, for literal Metadata construction.
func Copies(v uint64) *uint64 { return &v }
