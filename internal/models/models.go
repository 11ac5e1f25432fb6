package models

// Location describes where a death happened.
type Location struct {
	Zone    string  `json:"zone,omitempty"`
	Subzone string  `json:"subzone,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
}

// Killer describes what caused a death. The addon fills whichever of
// SpellName, Detail or Subevent it could extract from the combat log.
type Killer struct {
	SourceName string `json:"sourceName,omitempty"`
	SpellName  string `json:"spellName,omitempty"`
	Detail     string `json:"detail,omitempty"`
	Subevent   string `json:"subevent,omitempty"`
}

// BagSlot is one occupied slot inside a bag. Either the full hyperlink
// token or a bare item id may be present.
type BagSlot struct {
	Hyperlink  string `json:"hyperlink,omitempty"`
	ItemID     int64  `json:"itemID,omitempty"`
	StackCount int    `json:"stackCount,omitempty"`
}

// Bag is one bag and its occupied slots.
type Bag struct {
	BagID int       `json:"bagID"`
	Slots []BagSlot `json:"slots,omitempty"`
}

// DeathRecord is one persisted death event. Records are immutable once
// written; the id is assigned by the server at ingestion time.
type DeathRecord struct {
	ID     string `json:"id"`
	Player string `json:"player"`
	Realm  string `json:"realm"`
	Class  string `json:"class,omitempty"`
	Level  int    `json:"level,omitempty"`
	At     int64  `json:"at"`

	Location *Location `json:"location,omitempty"`
	Killer   *Killer   `json:"killer,omitempty"`

	// Money is carried in exactly one of two shapes: the decomposed
	// gold/silver/copper triple or a single total in copper.
	MoneyGold       *int64 `json:"moneyGold,omitempty"`
	MoneySilver     *int64 `json:"moneySilver,omitempty"`
	MoneyCopper     *int64 `json:"moneyCopper,omitempty"`
	MoneyCopperOnly *int64 `json:"moneyCopperOnly,omitempty"`

	Equipped []string `json:"equipped,omitempty"`
	Bags     []Bag    `json:"bags,omitempty"`

	// Screenshot is a server-relative URL path set during ingestion,
	// never taken from the client payload.
	Screenshot string `json:"screenshot,omitempty"`
}

// DeathPayload is the loose JSON shape submitted by the addon in the
// "death" multipart field. Pointer fields distinguish "absent" from
// zero so the service can apply its defaulting rules.
type DeathPayload struct {
	Player string `json:"player"`
	Realm  string `json:"realm"`
	Class  string `json:"class"`
	Level  int    `json:"level"`
	At     *int64 `json:"at"`

	Location *Location `json:"location"`
	Killer   *Killer   `json:"killer"`

	MoneyGold       *int64 `json:"moneyGold"`
	MoneySilver     *int64 `json:"moneySilver"`
	MoneyCopper     *int64 `json:"moneyCopper"`
	MoneyCopperOnly *int64 `json:"moneyCopperOnly"`

	Equipped []string `json:"equipped"`
	Bags     []Bag    `json:"bags"`
}

// CopperTotal normalizes the two money shapes to a single copper amount.
// The second return value reports whether the record carried any money
// information at all.
func (r *DeathRecord) CopperTotal() (int64, bool) {
	if r.MoneyCopperOnly != nil {
		return *r.MoneyCopperOnly, true
	}
	if r.MoneyGold == nil && r.MoneySilver == nil && r.MoneyCopper == nil {
		return 0, false
	}
	var total int64
	if r.MoneyGold != nil {
		total += *r.MoneyGold * 10000
	}
	if r.MoneySilver != nil {
		total += *r.MoneySilver * 100
	}
	if r.MoneyCopper != nil {
		total += *r.MoneyCopper
	}
	return total, true
}
