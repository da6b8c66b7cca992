package rejseplanen

// Wire types for the HaCon HAFAS API behind rejseplanen.dk.

type apiRequest struct {
	ID        string       `json:"id"`
	Ver       string       `json:"ver"`
	Lang      string       `json:"lang"`
	Auth      authSection  `json:"auth"`
	Client    clientInfo   `json:"client"`
	Formatted bool         `json:"formatted"`
	Ext       string       `json:"ext"`
	SvcReqL   []svcRequest `json:"svcReqL"`
}

type authSection struct {
	Type string `json:"type"`
	AID  string `json:"aid"`
}

type clientInfo struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Name string `json:"name"`
	L    string `json:"l"`
	V    string `json:"v"`
}

type svcRequest struct {
	Req  interface{} `json:"req"`
	Meth string      `json:"meth"`
	ID   string      `json:"id"`
}

type locMatchReq struct {
	Input locMatchInput `json:"input"`
}

type locMatchInput struct {
	Field  string       `json:"field"`
	Loc    locMatchName `json:"loc"`
	MaxLoc int          `json:"maxLoc"`
}

type locMatchName struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Dist int    `json:"dist"`
}

type locGeoPosReq struct {
	Ring   geoRing `json:"ring"`
	MaxLoc int     `json:"maxLoc"`
}

type geoRing struct {
	CCrd    coordinate `json:"cCrd"`
	MaxDist int        `json:"maxDist"`
}

type stationBoardReq struct {
	StbLoc stationBoardLoc `json:"stbLoc"`
	Type   string          `json:"type"`
	MaxJny int             `json:"maxJny"`
}

type stationBoardLoc struct {
	LID string `json:"lid"`
}

type apiResponse struct {
	Ver     string      `json:"ver"`
	Err     string      `json:"err"`
	ErrTxt  string      `json:"errTxt,omitempty"`
	SvcResL []svcResult `json:"svcResL"`
}

type svcResult struct {
	ID   string    `json:"id"`
	Meth string    `json:"meth"`
	Err  string    `json:"err"`
	Res  resultSet `json:"res"`
}

// resultSet is a union of the per-method payloads; only the fields for the
// requested method are populated.
type resultSet struct {
	Match  *locMatchRes `json:"match,omitempty"`
	LocL   []location   `json:"locL,omitempty"`
	JnyL   []journey    `json:"jnyL,omitempty"`
	Common *commonData  `json:"common,omitempty"`
}

type locMatchRes struct {
	LocL []location `json:"locL"`
}

// location type "S" is a station; "A" an address; "P" a POI.
type location struct {
	LID        string     `json:"lid"`
	Type       string     `json:"type"`
	Name       string     `json:"name"`
	ExtID      string     `json:"extId"`
	Crd        coordinate `json:"crd"`
	IsMainMast bool       `json:"isMainMast,omitempty"`
}

// coordinate carries lat/lng scaled by 1e6.
type coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type commonData struct {
	ProdL []product `json:"prodL"`
}

type product struct {
	Name string `json:"name"`
}

type journey struct {
	JID     string      `json:"jid"`
	Date    string      `json:"date"`
	ProdX   int         `json:"prodX"`
	DirTxt  string      `json:"dirTxt"`
	StbStop journeyStop `json:"stbStop"`
}

type journeyStop struct {
	DTimeS string    `json:"dTimeS"`
	DTimeR string    `json:"dTimeR,omitempty"`
	DPltfS *platform `json:"dPltfS,omitempty"`
	DPltfR *platform `json:"dPltfR,omitempty"`
}

type platform struct {
	Txt string `json:"txt"`
}
