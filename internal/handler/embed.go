package handler

import (
	"fmt"
	"html"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
)

// Embed snippet defaults. Height and width are clamped so a hostile query
// cannot produce an absurd iframe.
const (
	embedDefaultWidth  = 600
	embedDefaultHeight = 400
	embedMaxDimension  = 2000
	embedMinDimension  = 100
)

type embedResponse struct {
	HTML string `json:"html"`
}

// EmbedSnippet returns a copy-pasteable iframe snippet for embedding the
// public incident map. Filter parameters (country, min_evidence, asset_type)
// pass through to the embedded page; dimensions are clamped.
func (h *Handler) EmbedSnippet(c echo.Context) error {
	width := clampDimension(intQuery(c, "width"), embedDefaultWidth)
	height := clampDimension(intQuery(c, "height"), embedDefaultHeight)

	q := url.Values{}
	for _, name := range []string{"country", "min_evidence", "asset_type", "status"} {
		if v := c.QueryParam(name); v != "" {
			q.Set(name, v)
		}
	}

	embedURL := "/embed/map"
	if enc := q.Encode(); enc != "" {
		embedURL += "?" + enc
	}

	snippet := fmt.Sprintf(
		`<iframe src=%q width="%d" height="%d" frameborder="0" loading="lazy" title="Drone incident map"></iframe>`,
		html.EscapeString(embedURL), width, height,
	)

	h.setCacheControl(c)
	return c.JSON(http.StatusOK, embedResponse{HTML: snippet})
}

func clampDimension(v, def int) int {
	if v == 0 {
		return def
	}
	if v < embedMinDimension {
		return embedMinDimension
	}
	if v > embedMaxDimension {
		return embedMaxDimension
	}
	return v
}
