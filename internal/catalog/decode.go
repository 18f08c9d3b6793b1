package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// The catalogs have answered in several shapes over time; the decoders accept
// all of them and map anything else to ErrMalformed.

type errorEnvelope struct {
	Error json.RawMessage `json:"error"`
}

// reportedError returns an *APIError when obj carries a non-empty "error".
func reportedError(obj []byte) error {
	var env errorEnvelope
	if err := json.Unmarshal(obj, &env); err != nil || len(env.Error) == 0 {
		return nil
	}
	var msg string
	if err := json.Unmarshal(env.Error, &msg); err != nil {
		// non-string error payloads still mean failure
		msg = string(env.Error)
	}
	if msg == "" || msg == "null" {
		return nil
	}
	return &APIError{Message: msg}
}

func decodeCategories(body []byte) ([]string, error) {
	body = bytes.TrimSpace(body)
	switch leading(body) {
	case '[':
		var out []string
		if err := json.Unmarshal(body, &out); err != nil {
			return nil, fmt.Errorf("%w: categories: %v", ErrMalformed, err)
		}
		return out, nil
	case '{':
		if err := reportedError(body); err != nil {
			return nil, err
		}
		var obj struct {
			Gamemodes  *[]string `json:"gamemodes"`
			Categories *[]string `json:"categories"`
		}
		if err := json.Unmarshal(body, &obj); err != nil {
			return nil, fmt.Errorf("%w: categories: %v", ErrMalformed, err)
		}
		switch {
		case obj.Gamemodes != nil:
			return *obj.Gamemodes, nil
		case obj.Categories != nil:
			return *obj.Categories, nil
		}
	}
	return nil, fmt.Errorf("%w: categories: no list in response", ErrMalformed)
}

func decodeItems(body []byte) ([]ItemSummary, error) {
	body = bytes.TrimSpace(body)
	switch leading(body) {
	case '[':
		return decodeItemArray(body)
	case '{':
		if err := reportedError(body); err != nil {
			return nil, err
		}
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(body, &obj); err != nil {
			return nil, fmt.Errorf("%w: items: %v", ErrMalformed, err)
		}
		for _, key := range []string{"models", "maps", "items"} {
			if raw, ok := obj[key]; ok {
				return decodeItemArray(raw)
			}
		}
	}
	return nil, fmt.Errorf("%w: items: no list in response", ErrMalformed)
}

func decodeItemArray(raw []byte) ([]ItemSummary, error) {
	raw = bytes.TrimSpace(raw)
	if string(raw) == "null" {
		return nil, nil
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, fmt.Errorf("%w: items: %v", ErrMalformed, err)
	}

	out := make([]ItemSummary, 0, len(elems))
	for _, el := range elems {
		el = bytes.TrimSpace(el)
		var name string
		switch leading(el) {
		case '"':
			if err := json.Unmarshal(el, &name); err != nil {
				return nil, fmt.Errorf("%w: item name: %v", ErrMalformed, err)
			}
		case '{':
			var obj struct {
				DisplayName string `json:"displayName"`
				Name        string `json:"name"`
			}
			if err := json.Unmarshal(el, &obj); err != nil {
				return nil, fmt.Errorf("%w: item summary: %v", ErrMalformed, err)
			}
			name = firstNonEmpty(obj.DisplayName, obj.Name)
		case 'n':
			continue
		default:
			return nil, fmt.Errorf("%w: item of unexpected type", ErrMalformed)
		}
		if name != "" {
			out = append(out, ItemSummary{Name: name})
		}
	}
	return out, nil
}

type detailFields struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Gamemode    string `json:"gamemode"`
	Game        string `json:"game"`
	Category    string `json:"category"`
	DownloadURL string `json:"downloadUrl"`
	Download    string `json:"download"`
	URL         string `json:"url"`
	ImgURL      string `json:"imgUrl"`
	Thumbnail   string `json:"thumbnail"`
	Image       string `json:"image"`
	ViewerURL   string `json:"viewerUrl"`
	Viewer      string `json:"viewer"`
	Format      string `json:"format"`
}

func decodeDetail(body []byte) (*ItemDetail, error) {
	body = bytes.TrimSpace(body)
	if leading(body) != '{' {
		return nil, fmt.Errorf("%w: detail: expected an object", ErrMalformed)
	}
	if err := reportedError(body); err != nil {
		return nil, err
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, fmt.Errorf("%w: detail: %v", ErrMalformed, err)
	}

	// outer fields still count: a wrapped model does not repeat its gamemode
	var outer detailFields
	if err := json.Unmarshal(body, &outer); err != nil {
		outer = detailFields{}
	}

	target := body
	for _, key := range []string{"model", "map", "item"} {
		raw, ok := obj[key]
		if !ok {
			continue
		}
		raw = bytes.TrimSpace(raw)
		switch leading(raw) {
		case 'n':
			return nil, ErrNotFound
		case '{':
			target = raw
		default:
			continue
		}
		break
	}

	var f detailFields
	if err := json.Unmarshal(target, &f); err != nil {
		return nil, fmt.Errorf("%w: detail: %v", ErrMalformed, err)
	}

	d := &ItemDetail{
		Category:    firstNonEmpty(f.Gamemode, f.Game, f.Category, outer.Gamemode, outer.Game, outer.Category),
		Name:        firstNonEmpty(f.DisplayName, f.Name),
		DownloadURL: firstNonEmpty(f.DownloadURL, f.Download, f.URL),
		ImageURL:    firstNonEmpty(f.ImgURL, f.Thumbnail, f.Image),
		ViewerURL:   firstNonEmpty(f.ViewerURL, f.Viewer),
		Format:      f.Format,
	}
	if d.DownloadURL == "" {
		return nil, ErrNotFound
	}
	return d, nil
}

func leading(b []byte) byte {
	if len(b) == 0 {
		return 0
	}
	return b[0]
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
