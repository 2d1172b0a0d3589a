package id

// Description is the display view of an identifier string, as shown by
// registry listings. Invalid strings still produce a Description with Valid
// false and the reason in Error.
type Description struct {
	ID        string  `json:"id"`
	Scheme    string  `json:"scheme"`
	Value     string  `json:"value,omitempty"`
	Timestamp int64   `json:"timestamp"`
	Offset    *uint64 `json:"offset,omitempty"`
	Readable  string  `json:"readable,omitempty"`
	Valid     bool    `json:"valid"`
	Error     string  `json:"error,omitempty"`

	// Err is the underlying error, for errors.Is checks.
	Err error `json:"-"`
}

// Describe decodes str and splits it into its timestamp and offset. The
// readable form is rendered at offsetMinutes. A value whose timestamp lies
// outside the readable years 0000-9999 is not valid.
func (s *Scheme) Describe(str string, offsetMinutes int) Description {
	d := Description{ID: str, Scheme: s.name}

	v, err := s.Decode(str)
	if err != nil {
		return d.fail(err)
	}
	d.Value = v.String()

	tick, offset, hasOffset, err := s.Split(v)
	if err != nil {
		return d.fail(err)
	}
	d.Timestamp = tick
	if hasOffset {
		d.Offset = &offset
	}
	d.Readable, err = s.ReadableTick(tick, offsetMinutes)
	if err != nil {
		return d.fail(err)
	}
	d.Valid = true
	return d
}

func (d Description) fail(err error) Description {
	d.Err = err
	d.Error = err.Error()
	return d
}
