package cbhttpx

import (
	"encoding/json"
	"errors"
)

type rowStreamState int

const (
	rowStreamStateStart    rowStreamState = 0
	rowStreamStateRows     rowStreamState = 1
	rowStreamStatePostRows rowStreamState = 2
	rowStreamStateEnd      rowStreamState = 3
)

// RawJsonRowStreamer reads a JSON object of the form
// {"attrib": ..., "<RowsAttrib>": [row, row, ...], "attrib": ...} without
// holding every row in memory.  Attributes before the rows are returned by
// ReadPrelude, the attributes from both sides by ReadEpilog.
type RawJsonRowStreamer struct {
	Decoder    *json.Decoder
	RowsAttrib string

	attribs map[string]json.RawMessage
	state   rowStreamState
}

func (s *RawJsonRowStreamer) expectDelim(want json.Delim, what string) error {
	t, err := s.Decoder.Token()
	if err != nil {
		return err
	}
	if delim, ok := t.(json.Delim); !ok || delim != want {
		return errors.New("expected " + what)
	}
	return nil
}

// readAttribs consumes attributes until the end of the object, or until the
// rows attribute when stopAtRows is set.
func (s *RawJsonRowStreamer) readAttribs(stopAtRows bool) error {
	for s.Decoder.More() {
		t, err := s.Decoder.Token()
		if err != nil {
			return err
		}
		key, ok := t.(string)
		if !ok {
			return errors.New("expected an object property name")
		}

		if stopAtRows && key == s.RowsAttrib {
			return s.beginRows()
		}

		var value json.RawMessage
		if err := s.Decoder.Decode(&value); err != nil {
			return err
		}
		s.attribs[key] = value
	}

	s.state = rowStreamStateEnd
	return nil
}

func (s *RawJsonRowStreamer) beginRows() error {
	t, err := s.Decoder.Token()
	if err != nil {
		return err
	}

	// a null rows attribute is treated as no rows at all
	if t == nil {
		return s.readAttribs(false)
	}

	if delim, ok := t.(json.Delim); !ok || delim != '[' {
		return errors.New("expected an opening bracket for the rows")
	}

	if s.Decoder.More() {
		s.state = rowStreamStateRows
	} else {
		s.state = rowStreamStatePostRows
	}
	return nil
}

func (s *RawJsonRowStreamer) marshalAttribs() (json.RawMessage, error) {
	return json.Marshal(s.attribs)
}

func (s *RawJsonRowStreamer) ReadPrelude() (json.RawMessage, error) {
	if s.state != rowStreamStateStart {
		return nil, errors.New("unexpected parsing state during begin")
	}

	s.attribs = make(map[string]json.RawMessage)

	if err := s.expectDelim('{', "an opening brace for the result"); err != nil {
		return nil, err
	}

	if err := s.readAttribs(true); err != nil {
		return nil, err
	}

	return s.marshalAttribs()
}

func (s *RawJsonRowStreamer) HasMoreRows() bool {
	return s.state == rowStreamStateRows && s.Decoder.More()
}

// ReadRow returns the next row, or nil once the rows are exhausted.
func (s *RawJsonRowStreamer) ReadRow() (json.RawMessage, error) {
	if s.state < rowStreamStateRows {
		return nil, errors.New("unexpected parsing state during readRow")
	}
	if s.state > rowStreamStateRows {
		return nil, nil
	}

	var msg json.RawMessage
	if err := s.Decoder.Decode(&msg); err != nil {
		return nil, err
	}

	if !s.Decoder.More() {
		s.state = rowStreamStatePostRows
	}

	return msg, nil
}

func (s *RawJsonRowStreamer) ReadEpilog() (json.RawMessage, error) {
	if s.state < rowStreamStatePostRows {
		return nil, errors.New("unexpected parsing state during end")
	}

	if s.state == rowStreamStatePostRows {
		if err := s.expectDelim(']', "an ending bracket for the rows"); err != nil {
			return nil, err
		}
		if err := s.readAttribs(false); err != nil {
			return nil, err
		}
	}

	return s.marshalAttribs()
}
