package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/2Lynk/DeathLogger-server/internal/gamedata"
	"github.com/2Lynk/DeathLogger-server/internal/models"
	"github.com/2Lynk/DeathLogger-server/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// PagesHandler renders the HTML pages over the store
type PagesHandler struct {
	service  service.Service
	log      *logrus.Logger
	pageSize int
}

// NewPagesHandler creates a new PagesHandler instance
func NewPagesHandler(svc service.Service, log *logrus.Logger, pageSize int) *PagesHandler {
	return &PagesHandler{
		service:  svc,
		log:      log,
		pageSize: pageSize,
	}
}

// DeathRow is the template view of one record in a listing.
type DeathRow struct {
	ID     string
	Player string
	Realm  string
	Slug   string
	Class  string
	Level  int
	When   string
	Zone   string
	Killer string
	Money  string
}

// slotView is the template view of one occupied bag slot.
type slotView struct {
	Label      string
	StackCount int
}

// bagView is the template view of one bag.
type bagView struct {
	BagID int
	Slots []slotView
}

// deathView is the template view of a full record.
type deathView struct {
	DeathRow
	Screenshot string
	Equipped   []string
	Bags       []bagView
}

// Home renders the listing of recent deaths
func (h *PagesHandler) Home(c *gin.Context) {
	records := h.service.ListDeaths(h.pageSize)
	rows := make([]DeathRow, 0, len(records))
	for i := range records {
		rows = append(rows, newDeathRow(&records[i]))
	}
	c.HTML(http.StatusOK, "home.html", gin.H{
		"Title":  "Recent Deaths",
		"Deaths": rows,
	})
}

// Death renders the detail page for one record
func (h *PagesHandler) Death(c *gin.Context) {
	record, err := h.service.GetDeath(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.notFound(c, "No such death")
			return
		}
		h.log.WithError(err).Error("Failed to load death record")
		c.HTML(http.StatusInternalServerError, "notfound.html", gin.H{"Title": "Error", "Message": "Something went wrong"})
		return
	}
	c.HTML(http.StatusOK, "death.html", gin.H{
		"Title": fmt.Sprintf("%s @ %s", record.Player, record.Realm),
		"Death": newDeathView(record),
	})
}

// Player renders the profile page for one player@realm slug
func (h *PagesHandler) Player(c *gin.Context) {
	profile, err := h.service.PlayerProfile(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.notFound(c, "No deaths recorded for this character")
			return
		}
		h.log.WithError(err).Error("Failed to load player profile")
		c.HTML(http.StatusInternalServerError, "notfound.html", gin.H{"Title": "Error", "Message": "Something went wrong"})
		return
	}

	rows := make([]DeathRow, 0, len(profile.Deaths))
	for i := range profile.Deaths {
		rows = append(rows, newDeathRow(&profile.Deaths[i]))
	}
	c.HTML(http.StatusOK, "player.html", gin.H{
		"Title":      profile.Slug,
		"Player":     profile.Player,
		"Realm":      profile.Realm,
		"Slug":       profile.Slug,
		"DeathCount": profile.DeathCount,
		"TotalLost":  profile.TotalLost,
		"Deaths":     rows,
	})
}

func (h *PagesHandler) notFound(c *gin.Context, message string) {
	c.HTML(http.StatusNotFound, "notfound.html", gin.H{
		"Title":   "Not Found",
		"Message": message,
	})
}

func newDeathRow(record *models.DeathRecord) DeathRow {
	row := DeathRow{
		ID:     record.ID,
		Player: record.Player,
		Realm:  record.Realm,
		Slug:   gamedata.Slug(record.Player, record.Realm),
		Class:  record.Class,
		Level:  record.Level,
		When:   time.Unix(record.At, 0).UTC().Format("Jan 2, 2006 15:04 UTC"),
	}
	if record.Location != nil {
		row.Zone = record.Location.Zone
		if record.Location.Subzone != "" {
			row.Zone = row.Zone + " - " + record.Location.Subzone
		}
	}
	if record.Killer != nil {
		row.Killer = record.Killer.SourceName
		cause := record.Killer.SpellName
		if cause == "" {
			cause = record.Killer.Detail
		}
		if cause == "" {
			cause = record.Killer.Subevent
		}
		if cause != "" {
			if row.Killer != "" {
				row.Killer = row.Killer + " (" + cause + ")"
			} else {
				row.Killer = cause
			}
		}
	}
	if copper, ok := record.CopperTotal(); ok {
		row.Money = gamedata.FormatCopper(copper)
	}
	return row
}

func newDeathView(record *models.DeathRecord) deathView {
	view := deathView{
		DeathRow:   newDeathRow(record),
		Screenshot: record.Screenshot,
	}
	for _, link := range record.Equipped {
		view.Equipped = append(view.Equipped, gamedata.ItemName(link))
	}
	for _, bag := range record.Bags {
		bv := bagView{BagID: bag.BagID}
		for _, slot := range bag.Slots {
			label := gamedata.ItemLabel(slot.Hyperlink, slot.ItemID)
			if label == "" {
				continue
			}
			bv.Slots = append(bv.Slots, slotView{Label: label, StackCount: slot.StackCount})
		}
		view.Bags = append(view.Bags, bv)
	}
	return view
}
