// SPDX-License-Identifier: ice License 1.0

package model

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	jlexer "github.com/mailru/easyjson/jlexer"
	jwriter "github.com/mailru/easyjson/jwriter"
)

func filterUnmarshalEasyJSON(in *jlexer.Lexer, out *Filter) {
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
		switch key {
		case "ids":
			in.Delim('[')
			out.IDs = make([]ID, 0, 8)
			for !in.IsDelim(']') {
				id, err := IDFromHex(in.String())
				if err != nil {
					in.AddError(errors.Wrap(err, "ids"))
				}
				out.IDs = append(out.IDs, id)
				in.WantComma()
			}
			in.Delim(']')
		case "kinds":
			in.Delim('[')
			out.Kinds = make([]Kind, 0, 4)
			for !in.IsDelim(']') {
				out.Kinds = append(out.Kinds, Kind(in.Uint16()))
				in.WantComma()
			}
			in.Delim(']')
		case "authors":
			in.Delim('[')
			out.Authors = make([]PubKey, 0, 8)
			for !in.IsDelim(']') {
				pk, err := PubKeyFromHex(in.String())
				if err != nil {
					in.AddError(errors.Wrap(err, "authors"))
				}
				out.Authors = append(out.Authors, pk)
				in.WantComma()
			}
			in.Delim(']')
		case "since":
			since := Timestamp(in.Int64())
			out.Since = &since
		case "until":
			until := Timestamp(in.Int64())
			out.Until = &until
		case "limit":
			limit := in.Int()
			out.Limit = &limit
		case "search":
			search := in.String()
			out.Search = &search
		default:
			if len(key) > 1 && key[0] == '#' {
				if out.Tags == nil {
					out.Tags = make(TagMap)
				}
				tagValues := make([]string, 0, 4)
				in.Delim('[')
				for !in.IsDelim(']') {
					tagValues = append(tagValues, in.String())
					in.WantComma()
				}
				in.Delim(']')
				out.Tags[strings.Clone(key[1:])] = tagValues
			} else {
				in.SkipRecursive()
			}
		}
		in.WantComma()
	}
	in.Delim('}')
	if isTopLevel {
		in.Consumed()
	}
}

func filterMarshalEasyJSON(out *jwriter.Writer, in *Filter) {
	out.RawByte('{')
	first := true
	field := func(name string) {
		if !first {
			out.RawByte(',')
		}
		first = false
		out.String(name)
		out.RawByte(':')
	}
	if in.IDs != nil {
		field("ids")
		out.RawByte('[')
		for i := range in.IDs {
			if i > 0 {
				out.RawByte(',')
			}
			out.String(in.IDs[i].String())
		}
		out.RawByte(']')
	}
	if in.Kinds != nil {
		field("kinds")
		out.RawByte('[')
		for i, k := range in.Kinds {
			if i > 0 {
				out.RawByte(',')
			}
			out.Uint16(uint16(k))
		}
		out.RawByte(']')
	}
	if in.Authors != nil {
		field("authors")
		out.RawByte('[')
		for i := range in.Authors {
			if i > 0 {
				out.RawByte(',')
			}
			out.String(in.Authors[i].String())
		}
		out.RawByte(']')
	}
	if in.Since != nil {
		field("since")
		out.Int64(int64(*in.Since))
	}
	if in.Until != nil {
		field("until")
		out.Int64(int64(*in.Until))
	}
	if in.Limit != nil {
		field("limit")
		out.Int(*in.Limit)
	}
	if in.Search != nil {
		field("search")
		out.String(*in.Search)
	}
	tagNames := make([]string, 0, len(in.Tags))
	for name := range in.Tags {
		tagNames = append(tagNames, name)
	}
	slices.Sort(tagNames)
	for _, name := range tagNames {
		field("#" + name)
		out.RawByte('[')
		for i, v := range in.Tags[name] {
			if i > 0 {
				out.RawByte(',')
			}
			out.String(v)
		}
		out.RawByte(']')
	}
	out.RawByte('}')
}

// MarshalJSON supports json.Marshaler interface.
func (v Filter) MarshalJSON() ([]byte, error) {
	w := jwriter.Writer{NoEscapeHTML: true}
	filterMarshalEasyJSON(&w, &v)
	return w.Buffer.BuildBytes(), w.Error
}

// UnmarshalJSON supports json.Unmarshaler interface.
func (v *Filter) UnmarshalJSON(data []byte) error {
	r := jlexer.Lexer{Data: data}
	filterUnmarshalEasyJSON(&r, v)
	return r.Error()
}

// UnmarshalEasyJSON supports easyjson.Unmarshaler interface.
func (v *Filter) UnmarshalEasyJSON(l *jlexer.Lexer) {
	filterUnmarshalEasyJSON(l, v)
}

// MarshalEasyJSON supports easyjson.Marshaler interface.
func (v Filter) MarshalEasyJSON(w *jwriter.Writer) {
	filterMarshalEasyJSON(w, &v)
}
