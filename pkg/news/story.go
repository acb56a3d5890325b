package news

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Story is one item of a Bloomberg story listing. Upstream field types drift
// between API versions, so ids and timestamps decode leniently.
type Story struct {
	ID             FlexString `json:"id"`
	InternalID     FlexString `json:"internalID"`
	Title          FlexString `json:"title"`
	Headline       FlexString `json:"headline"`
	Published      Timestamp  `json:"published"`
	PrimarySite    FlexString `json:"primarySite"`
	ShortURL       FlexString `json:"shortURL"`
	LongURL        FlexString `json:"longURL"`
	URL            FlexString `json:"url"`
	ThumbnailImage FlexString `json:"thumbnailImage"`
}

// Key is the dedup identifier: id, then internalID, then title.
func (s Story) Key() string {
	return firstNonEmpty(string(s.ID), string(s.InternalID), string(s.Title))
}

// Link is the display URL: shortURL, then longURL, then url.
func (s Story) Link() string {
	return firstNonEmpty(string(s.ShortURL), string(s.LongURL), string(s.URL))
}

func (s Story) DisplayTitle() string {
	return firstNonEmpty(string(s.Title), string(s.Headline))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// FlexString accepts a JSON string or number. Any other JSON value decodes to "".
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*f = ""
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*f = ""
			return nil
		}
		*f = FlexString(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		*f = FlexString(data)
	default:
		*f = ""
	}
	return nil
}

// Timestamp is a Unix time in seconds. Numbers and numeric strings are accepted;
// anything else decodes to 0.
type Timestamp int64

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	raw = strings.Trim(raw, `"`)
	*t = 0

	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*t = Timestamp(n)
		return nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && f < 1<<62 && f > -(1<<62) {
		*t = Timestamp(int64(f))
	}
	return nil
}
