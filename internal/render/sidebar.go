// Transportmap - Transport Activity Heatmap Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/transportmap

package render

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/tomtom215/transportmap/internal/models"
	"github.com/tomtom215/transportmap/internal/transform"
)

// SidebarState is what the sidebar currently shows.
type SidebarState string

const (
	SidebarLoading SidebarState = "loading"
	SidebarZoomIn  SidebarState = "zoom_in"
	SidebarEmpty   SidebarState = "empty"
	SidebarError   SidebarState = "error"
	SidebarList    SidebarState = "list"
)

// SidebarMode selects how transports are listed.
type SidebarMode string

const (
	// ModeCompanies lists one card per company with role badges.
	ModeCompanies SidebarMode = "companies"
	// ModeTransports lists one card per transport.
	ModeTransports SidebarMode = "transports"
)

// ParseSidebarMode validates a mode name. Empty selects ModeCompanies.
func ParseSidebarMode(s string) (SidebarMode, error) {
	switch SidebarMode(s) {
	case ModeCompanies, ModeTransports:
		return SidebarMode(s), nil
	case "":
		return ModeCompanies, nil
	default:
		return "", fmt.Errorf("unknown sidebar mode %q", s)
	}
}

// Border colours of company cards.
const (
	ColorBothRoles  = "#a855f7"
	ColorEmitent    = "#10b981"
	ColorDestinatar = "#3b82f6"
	ColorNoRole     = "#64748b"
)

// ZoomInFeedCount replaces the feed count while the area is too large.
const ZoomInFeedCount = "---"

const (
	notAvailable      = "N/A"
	unknownCompany    = "Unknown"
	shortIDLength     = 8
	loadingSkeletons  = 3
	companyCountLabel = "Transporturi"
)

// Badge is a role label on a company card.
type Badge struct {
	Label      string `json:"label"`
	Color      string `json:"color"`
	Background string `json:"background"`
}

var (
	emitentBadge    = Badge{Label: "EMITENT", Color: "#10b981", Background: "rgba(16, 185, 129, 0.2)"}
	destinatarBadge = Badge{Label: "DESTINATAR", Color: "#3b82f6", Background: "rgba(59, 130, 246, 0.2)"}
)

// CompanyCard is one row of the companies sidebar.
type CompanyCard struct {
	Name        string  `json:"name"`
	Count       int     `json:"count"`
	CountLabel  string  `json:"count_label"`
	BorderColor string  `json:"border_color"`
	Badges      []Badge `json:"badges"`
}

// TransportCard is one row of the transports sidebar.
type TransportCard struct {
	Company   string `json:"company"`
	RoleClass string `json:"role_class"`
	RoleLabel string `json:"role_label"`
	ShortID   string `json:"short_id"`
	Time      string `json:"time"`
}

// SidebarView is the complete sidebar state pushed to the client.
type SidebarView struct {
	State SidebarState `json:"state"`
	Mode  SidebarMode  `json:"mode"`
	// FeedCount is the header counter text. Empty leaves the counter unchanged.
	FeedCount    string          `json:"feed_count,omitempty"`
	Message      string          `json:"message,omitempty"`
	Hint         string          `json:"hint,omitempty"`
	Placeholders int             `json:"placeholders,omitempty"`
	Companies    []CompanyCard   `json:"companies,omitempty"`
	Transports   []TransportCard `json:"transports,omitempty"`
}

type sidebarText struct {
	loading, zoomIn, zoomInHint, empty, failed string
}

var sidebarTexts = map[SidebarMode]sidebarText{
	ModeCompanies: {
		loading:    "Se analizează companiile...",
		zoomIn:     "Zona prea mare.",
		zoomInHint: "Dă Zoom In pentru a vedea companiile.",
		empty:      "Nicio companie activă în zonă.",
		failed:     "Eroare la încărcare date.",
	},
	ModeTransports: {
		zoomIn:     "Area too large.",
		zoomInHint: "Zoom in to see transports.",
		empty:      "No transports in this area",
		failed:     "Error loading transports",
	},
}

// SidebarRenderer builds sidebar views for one mode.
type SidebarRenderer struct {
	mode     SidebarMode
	location *time.Location
}

// NewSidebarRenderer creates a renderer. Transport times are shown in loc;
// a nil loc uses UTC.
func NewSidebarRenderer(mode SidebarMode, loc *time.Location) *SidebarRenderer {
	if mode == "" {
		mode = ModeCompanies
	}
	if loc == nil {
		loc = time.UTC
	}
	return &SidebarRenderer{mode: mode, location: loc}
}

// Mode returns the renderer's sidebar mode.
func (r *SidebarRenderer) Mode() SidebarMode {
	return r.mode
}

func (r *SidebarRenderer) text() sidebarText {
	return sidebarTexts[r.mode]
}

// Loading is shown while the transport fetch is in flight.
func (r *SidebarRenderer) Loading() SidebarView {
	v := SidebarView{State: SidebarLoading, Mode: r.mode, Message: r.text().loading}
	if r.mode == ModeTransports {
		v.Placeholders = loadingSkeletons
	}
	return v
}

// ZoomIn is shown instead of the list when the map is zoomed out too far.
func (r *SidebarRenderer) ZoomIn() SidebarView {
	t := r.text()
	return SidebarView{
		State:     SidebarZoomIn,
		Mode:      r.mode,
		FeedCount: ZoomInFeedCount,
		Message:   t.zoomIn,
		Hint:      t.zoomInHint,
	}
}

// Failed is shown when the transport fetch fails.
func (r *SidebarRenderer) Failed() SidebarView {
	return SidebarView{State: SidebarError, Mode: r.mode, Message: r.text().failed}
}

// List renders fetched transports in the renderer's mode.
func (r *SidebarRenderer) List(records []models.TransportRecord) SidebarView {
	if r.mode == ModeTransports {
		return r.transports(records)
	}
	return r.Companies(transform.GroupByCompany(records))
}

// Companies renders grouped company aggregates.
func (r *SidebarRenderer) Companies(companies []models.CompanyAggregate) SidebarView {
	v := SidebarView{
		Mode:      ModeCompanies,
		FeedCount: fmt.Sprintf("%d companii", len(companies)),
	}
	if len(companies) == 0 {
		v.State = SidebarEmpty
		v.Message = sidebarTexts[ModeCompanies].empty
		return v
	}

	v.State = SidebarList
	v.Companies = make([]CompanyCard, 0, len(companies))
	for i := range companies {
		v.Companies = append(v.Companies, CompanyCardFor(&companies[i]))
	}
	return v
}

func (r *SidebarRenderer) transports(records []models.TransportRecord) SidebarView {
	v := SidebarView{
		Mode:      ModeTransports,
		FeedCount: TransportFeedCount(len(records)),
	}
	if len(records) == 0 {
		v.State = SidebarEmpty
		v.Message = sidebarTexts[ModeTransports].empty
		return v
	}

	v.State = SidebarList
	v.Transports = make([]TransportCard, 0, len(records))
	for i := range records {
		v.Transports = append(v.Transports, TransportCardFor(&records[i], r.location))
	}
	return v
}

// TransportFeedCount formats the transports counter with a plural suffix.
func TransportFeedCount(n int) string {
	if n == 1 {
		return "1 transport"
	}
	return fmt.Sprintf("%d transports", n)
}

// CompanyCardFor builds the card of one company.
func CompanyCardFor(c *models.CompanyAggregate) CompanyCard {
	badges := make([]Badge, 0, 2)
	if c.IsEmitent {
		badges = append(badges, emitentBadge)
	}
	if c.IsDestinatar {
		badges = append(badges, destinatarBadge)
	}
	return CompanyCard{
		Name:        c.Name,
		Count:       c.Count,
		CountLabel:  companyCountLabel,
		BorderColor: BorderColor(c),
		Badges:      badges,
	}
}

// BorderColor picks the card border for a company's role combination.
func BorderColor(c *models.CompanyAggregate) string {
	switch {
	case c.IsEmitent && c.IsDestinatar:
		return ColorBothRoles
	case c.IsEmitent:
		return ColorEmitent
	case c.IsDestinatar:
		return ColorDestinatar
	default:
		return ColorNoRole
	}
}

// TransportCardFor builds the card of one transport. Any role other than
// emitent is shown as destinatar.
func TransportCardFor(t *models.TransportRecord, loc *time.Location) TransportCard {
	card := TransportCard{
		Company:   t.CompanyName,
		RoleClass: models.RoleDestinatar,
		RoleLabel: "Destinatar",
		ShortID:   ShortID(string(t.TransportID)),
		Time:      notAvailable,
	}
	if card.Company == "" {
		card.Company = unknownCompany
	}
	if t.IsEmitent() {
		card.RoleClass = models.RoleEmitent
		card.RoleLabel = "Emitent"
	}
	if t.FirstPosition != nil && t.FirstPosition.Timestamp.Valid {
		if loc == nil {
			loc = time.UTC
		}
		card.Time = t.FirstPosition.Timestamp.Time.In(loc).Format("15:04")
	}
	return card
}

// ShortID abbreviates a transport ID to its first eight characters.
func ShortID(id string) string {
	if id == "" {
		return notAvailable
	}
	if utf8.RuneCountInString(id) <= shortIDLength {
		return id + "..."
	}
	runes := []rune(id)
	return string(runes[:shortIDLength]) + "..."
}
