// SPDX-License-Identifier: ice License 1.0

package model

import (
	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-multierror"
	"github.com/mailru/easyjson"
	jwriter "github.com/mailru/easyjson/jwriter"
	"github.com/tidwall/gjson"
)

type (
	EnvelopeType string

	Envelope interface {
		Label() string
		MarshalJSON() ([]byte, error)
		UnmarshalJSON(data []byte) error
	}

	EventEnvelope struct {
		SubscriptionID *string
		Event          Event
	}

	ReqEnvelope struct {
		SubscriptionID string
		Filters
	}

	CountEnvelope struct {
		SubscriptionID string
		Filters
		Count *int64
	}
)

const (
	EnvelopeTypeEvent EnvelopeType = "EVENT"
	EnvelopeTypeReq   EnvelopeType = "REQ"
	EnvelopeTypeCount EnvelopeType = "COUNT"
)

func ParseMessage(message []byte) (e Envelope, err error) {
	if !gjson.ValidBytes(message) {
		return nil, errors.Wrap(ErrMalformedEnvelope, "invalid json")
	}
	switch EnvelopeType(gjson.GetBytes(message, "0").Str) {
	case EnvelopeTypeEvent:
		e = new(EventEnvelope)
	case EnvelopeTypeReq:
		e = new(ReqEnvelope)
	case EnvelopeTypeCount:
		e = new(CountEnvelope)
	default:
		return nil, ErrUnknownMessage
	}
	if err = e.UnmarshalJSON(message); err != nil {
		return nil, errors.Wrapf(err, "failed to decode %v envelope", e.Label())
	}

	return e, nil
}

func (*EventEnvelope) Label() string {
	return string(EnvelopeTypeEvent)
}

func (v *EventEnvelope) UnmarshalJSON(data []byte) error {
	arr := gjson.ParseBytes(data).Array()
	switch len(arr) {
	case 2:
		return errors.Wrap(easyjson.Unmarshal([]byte(arr[1].Raw), &v.Event), "failed to decode event")
	case 3:
		subID := arr[1].Str
		v.SubscriptionID = &subID

		return errors.Wrap(easyjson.Unmarshal([]byte(arr[2].Raw), &v.Event), "failed to decode event")
	default:
		return errors.Wrapf(ErrMalformedEnvelope, "EVENT envelope must have 2 or 3 items, got %v", len(arr))
	}
}

func (v *EventEnvelope) MarshalJSON() ([]byte, error) {
	w := jwriter.Writer{NoEscapeHTML: true}
	w.RawString(`["EVENT",`)
	if v.SubscriptionID != nil {
		w.String(*v.SubscriptionID)
		w.RawByte(',')
	}
	v.Event.MarshalEasyJSON(&w)
	w.RawByte(']')

	return w.Buffer.BuildBytes(), w.Error
}

func (*ReqEnvelope) Label() string {
	return string(EnvelopeTypeReq)
}

func (v *ReqEnvelope) UnmarshalJSON(data []byte) (err error) {
	arr := gjson.ParseBytes(data).Array()
	if len(arr) < 3 {
		return errors.Wrap(ErrMissingFilters, "failed to decode REQ envelope")
	}
	v.SubscriptionID = arr[1].Str
	v.Filters, err = unmarshalFilters(arr[2:])

	return err
}

func (v *ReqEnvelope) MarshalJSON() ([]byte, error) {
	w := jwriter.Writer{NoEscapeHTML: true}
	w.RawString(`["REQ",`)
	w.String(v.SubscriptionID)
	marshalFilters(&w, v.Filters)
	w.RawByte(']')

	return w.Buffer.BuildBytes(), w.Error
}

func (*CountEnvelope) Label() string {
	return string(EnvelopeTypeCount)
}

func (v *CountEnvelope) UnmarshalJSON(data []byte) (err error) {
	arr := gjson.ParseBytes(data).Array()
	if len(arr) < 3 {
		return errors.Wrap(ErrMissingFilters, "failed to decode COUNT envelope")
	}
	v.SubscriptionID = arr[1].Str
	if count := arr[2].Get("count"); len(arr) == 3 && count.Type == gjson.Number {
		n := count.Int()
		v.Count = &n

		return nil
	}
	v.Filters, err = unmarshalFilters(arr[2:])

	return err
}

func (v *CountEnvelope) MarshalJSON() ([]byte, error) {
	w := jwriter.Writer{NoEscapeHTML: true}
	w.RawString(`["COUNT",`)
	w.String(v.SubscriptionID)
	if v.Count != nil {
		w.RawString(`,{"count":`)
		w.Int64(*v.Count)
		w.RawByte('}')
	} else {
		marshalFilters(&w, v.Filters)
	}
	w.RawByte(']')

	return w.Buffer.BuildBytes(), w.Error
}

func unmarshalFilters(items []gjson.Result) (Filters, error) {
	var mErr *multierror.Error
	filters := make(Filters, len(items))
	for i := range items {
		if err := easyjson.Unmarshal([]byte(items[i].Raw), &filters[i]); err != nil {
			mErr = multierror.Append(mErr, errors.Wrapf(err, "on filter %v", i))
		}
	}
	if err := mErr.ErrorOrNil(); err != nil {
		return nil, err
	}

	return filters, nil
}

func marshalFilters(w *jwriter.Writer, filters Filters) {
	for i := range filters {
		w.RawByte(',')
		filterMarshalEasyJSON(w, &filters[i])
	}
}
