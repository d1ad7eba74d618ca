// SPDX-License-Identifier: ice License 1.0

package model

import (
	"github.com/cockroachdb/errors"
	jlexer "github.com/mailru/easyjson/jlexer"
	jwriter "github.com/mailru/easyjson/jwriter"
)

func eventUnmarshalEasyJSON(in *jlexer.Lexer, out *Event) {
	isTopLevel := in.IsStart()
	if in.IsNull() {
		if isTopLevel {
			in.Consumed()
		}
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		if in.IsNull() {
			in.Skip()
			in.WantComma()
			continue
		}
		var err error
		switch key {
		case "id":
			out.ID, err = IDFromHex(in.String())
		case "pubkey":
			out.PubKey, err = PubKeyFromHex(in.String())
		case "sig":
			out.Sig, err = SignatureFromHex(in.String())
		case "created_at":
			out.CreatedAt = Timestamp(in.Int64())
		case "kind":
			out.Kind = Kind(in.Uint16())
		case "content":
			out.Content = in.String()
		case "tags":
			in.Delim('[')
			out.Tags = make(Tags, 0, 8)
			for !in.IsDelim(']') {
				var tag Tag
				if in.IsNull() {
					in.Skip()
				} else {
					in.Delim('[')
					tag = make(Tag, 0, 4)
					for !in.IsDelim(']') {
						tag = append(tag, in.String())
						in.WantComma()
					}
					in.Delim(']')
				}
				out.Tags = append(out.Tags, tag)
				in.WantComma()
			}
			in.Delim(']')
		default:
			in.SkipRecursive()
		}
		if err != nil {
			in.AddError(errors.Wrapf(err, "field %v", key))
		}
		in.WantComma()
	}
	in.Delim('}')
	if isTopLevel {
		in.Consumed()
	}
}

func eventMarshalEasyJSON(out *jwriter.Writer, in *Event) {
	out.RawString(`{"id":`)
	out.String(in.ID.String())
	out.RawString(`,"pubkey":`)
	out.String(in.PubKey.String())
	out.RawString(`,"created_at":`)
	out.Int64(int64(in.CreatedAt))
	out.RawString(`,"kind":`)
	out.Uint16(uint16(in.Kind))
	out.RawString(`,"tags":[`)
	for i, tag := range in.Tags {
		if i > 0 {
			out.RawByte(',')
		}
		out.RawByte('[')
		for j, v := range tag {
			if j > 0 {
				out.RawByte(',')
			}
			out.String(v)
		}
		out.RawByte(']')
	}
	out.RawString(`],"content":`)
	out.String(in.Content)
	out.RawString(`,"sig":`)
	out.String(in.Sig.String())
	out.RawByte('}')
}

// MarshalJSON supports json.Marshaler interface.
func (e *Event) MarshalJSON() ([]byte, error) {
	w := jwriter.Writer{NoEscapeHTML: true}
	eventMarshalEasyJSON(&w, e)
	return w.Buffer.BuildBytes(), w.Error
}

// UnmarshalJSON supports json.Unmarshaler interface.
func (e *Event) UnmarshalJSON(data []byte) error {
	r := jlexer.Lexer{Data: data}
	eventUnmarshalEasyJSON(&r, e)
	return r.Error()
}

// UnmarshalEasyJSON supports easyjson.Unmarshaler interface.
func (e *Event) UnmarshalEasyJSON(l *jlexer.Lexer) {
	eventUnmarshalEasyJSON(l, e)
}

// MarshalEasyJSON supports easyjson.Marshaler interface.
func (e *Event) MarshalEasyJSON(w *jwriter.Writer) {
	eventMarshalEasyJSON(w, e)
}
