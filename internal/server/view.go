package server

import (
	"encoding/hex"

	"github.com/naota/taglib/internal/id3v2/frames"
	"github.com/naota/taglib/internal/id3v2/tag"
)

// FrameView is the JSON shape of one decoded frame.
type FrameView struct {
	ID          string   `json:"id"`
	Kind        string   `json:"kind"`
	Version     int      `json:"version"`
	Size        uint32   `json:"size"`
	Flags       string   `json:"flags"`
	Encoding    string   `json:"encoding,omitempty"`
	Description string   `json:"description,omitempty"`
	Language    string   `json:"language,omitempty"`
	Values      []string `json:"values,omitempty"`
	URL         string   `json:"url,omitempty"`
	MIMEType    string   `json:"mime_type,omitempty"`
	PictureType *uint8   `json:"picture_type,omitempty"`
	Owner       string   `json:"owner,omitempty"`
	Email       string   `json:"email,omitempty"`
	Rating      *uint8   `json:"rating,omitempty"`
	Count       *uint64  `json:"count,omitempty"`
	// Data is hex: picture bytes, a UFID identifier or an unknown payload.
	Data string `json:"data,omitempty"`
}

// TagView is the JSON shape of a whole tag.
type TagView struct {
	Version  int         `json:"version"`
	Revision uint8       `json:"revision"`
	Flags    uint8       `json:"flags"`
	Size     uint32      `json:"size"`
	Frames   []FrameView `json:"frames"`
}

func Describe(f frames.Frame) FrameView {
	h := f.Header()
	v := FrameView{
		ID:      f.ID(),
		Version: int(h.Version),
		Size:    h.Size,
		Flags:   h.Flags.String(),
	}
	if tb, ok := f.(frames.TextBearing); ok {
		v.Encoding = tb.TextEncoding().String()
	}
	switch fr := f.(type) {
	case *frames.TextFrame:
		v.Kind, v.Values = "text", fr.Values()
	case *frames.UserTextFrame:
		v.Kind, v.Description, v.Values = "user_text", fr.Description, fr.Values()
	case *frames.URLFrame:
		v.Kind, v.URL = "url", fr.URL
	case *frames.UserURLFrame:
		v.Kind, v.Description, v.URL = "user_url", fr.Description, fr.URL
	case *frames.CommentsFrame:
		v.Kind, v.Language, v.Description, v.Values = "comments", fr.Language, fr.Description, []string{fr.Text}
	case *frames.LyricsFrame:
		v.Kind, v.Language, v.Description, v.Values = "lyrics", fr.Language, fr.Description, []string{fr.Text}
	case *frames.PictureFrame:
		pt := uint8(fr.Type)
		v.Kind, v.MIMEType, v.PictureType, v.Description = "picture", fr.MIMEType, &pt, fr.Description
		v.Data = hex.EncodeToString(fr.Data)
	case *frames.UniqueFileIDFrame:
		v.Kind, v.Owner, v.Data = "ufid", fr.Owner, hex.EncodeToString(fr.Identifier)
	case *frames.PlayCounterFrame:
		n := fr.Count
		v.Kind, v.Count = "play_counter", &n
	case *frames.PopularimeterFrame:
		r, n := fr.Rating, fr.Count
		v.Kind, v.Email, v.Rating, v.Count = "popularimeter", fr.Email, &r, &n
	case *frames.UnknownFrame:
		v.Kind, v.Data = "unknown", hex.EncodeToString(fr.Payload())
	default:
		v.Kind = "other"
	}
	return v
}

func DescribeTag(t *tag.Tag) TagView {
	out := TagView{
		Version:  int(t.Version),
		Revision: t.Revision,
		Flags:    t.Flags,
		Size:     t.Size,
		Frames:   make([]FrameView, 0, len(t.Frames)),
	}
	for _, f := range t.Frames {
		out.Frames = append(out.Frames, Describe(f))
	}
	return out
}
