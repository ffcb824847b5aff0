package replay

import "encoding/json"

// Replay is the fully decoded record of a match. It is built incrementally by
// the record handlers during Reader.Read and is read-only afterwards.
type Replay struct {
	Version                uint32 `json:"version"`
	VersionCheckPlayerData uint32 `json:"versionCheckPlayerData,omitempty"`
	VersionCheckResults    uint32 `json:"versionCheckResults,omitempty"`

	RandomSeed   int32        `json:"randomSeed"`
	PlaylistID   uint32       `json:"playlistId"`
	PlaylistName string       `json:"playlistName,omitempty"`
	OnlineGame   bool         `json:"onlineGame"`
	Settings     GameSettings `json:"settings"`
	LevelID      uint32       `json:"levelId"`
	HeroCount    int          `json:"heroCount"`

	Length            uint32          `json:"length"` // match length in frames
	EndOfMatchFanfare uint32          `json:"endOfMatchFanfare"`
	Entities          []Entity        `json:"entities"`
	Results           map[int]int     `json:"results"`
	Deaths            []Death         `json:"deaths"`
	Inputs            map[int][]Input `json:"inputs"`
	Checksum          uint32          `json:"checksum"`
}

// Entity is an in-match actor. The format does not guarantee id uniqueness
// and the decoder does not assume it.
type Entity struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Player Player `json:"player"`
}

// Player is the fixed-shape cosmetic and gameplay profile of one entity.
// CompanionID only exists in the current dialect.
type Player struct {
	ColorSchemeID uint32    `json:"colorSchemeId"`
	SpawnBotID    uint32    `json:"spawnBotId"`
	CompanionID   uint32    `json:"companionId,omitempty"`
	EmitterID     uint32    `json:"emitterId"`
	PlayerThemeID uint32    `json:"playerThemeId"`
	Taunts        [8]uint32 `json:"taunts"`
	WinTauntID    uint16    `json:"winTauntId"`
	LoseTauntID   uint16    `json:"loseTauntId"`
	// OwnedTaunts is the raw taunt-ownership bitfield, one 32-bit word per
	// stop-bit-guarded element in arrival order.
	OwnedTaunts    []uint32  `json:"ownedTaunts"`
	AvatarID       uint16    `json:"avatarId"`
	Team           int32     `json:"team"`
	ConnectionTime int32     `json:"connectionTime"`
	Heroes         []Hero    `json:"heroes"`
	Bot            bool      `json:"bot"`
	// Handicap is nil when handicaps are disabled for this player; absent
	// fields are "not applicable", not zero.
	Handicap *Handicap `json:"handicap,omitempty"`
}

// Handicap is the optional per-player gameplay modifier block.
type Handicap struct {
	StockCount            uint32 `json:"stockCount"`
	DamageDoneMultiplier  uint32 `json:"damageDoneMultiplier"`  // percent
	DamageTakenMultiplier uint32 `json:"damageTakenMultiplier"` // percent
}

// Hero is one of a player's 1..5 selected heroes. WeaponSkins is stored in
// fixed order even though the wire order differs between dialects.
type Hero struct {
	HeroID      uint32    `json:"heroId"`
	CostumeID   uint32    `json:"costumeId"`
	Stance      uint32    `json:"stance"`
	WeaponSkins [2]uint16 `json:"weaponSkins"`
}

// Mode flags carried in GameSettings.Flags.
const (
	SettingTeamsEnabled uint32 = 1 << iota
	SettingTeamDamage
	SettingPickupsDisabled
	SettingTestFeatures
	SettingFixedCamera
	SettingGhostRule
	SettingMapArtDisabled
	SettingCrewBattle
)

// GameSettings carries the match configuration from the header record.
// SpawnRules is only populated by the legacy dialect; GadgetSelection and
// CustomGadgets only by the current one.
type GameSettings struct {
	Flags         uint32 `json:"flags"`
	MaxPlayers    uint32 `json:"maxPlayers"`
	Duration      uint32 `json:"duration"`
	RoundDuration uint32 `json:"roundDuration"`
	StartingLives uint32 `json:"startingLives"`
	ScoringType   uint32 `json:"scoringType"`
	ScoreToWin    uint32 `json:"scoreToWin"`
	GameSpeed     uint32 `json:"gameSpeed"`
	DamageRatio   uint32 `json:"damageRatio"`
	LevelSetID    uint32 `json:"levelSetId"`

	SpawnRules      *SpawnRules     `json:"spawnRules,omitempty"`
	GadgetSelection GadgetSelection `json:"gadgetSelection"`
	CustomGadgets   *CustomGadgets  `json:"customGadgets,omitempty"`
}

// SpawnRules is the legacy free-form gadget model. A set bit in
// GadgetsDisabled turns the matching gadget off.
type SpawnRules struct {
	ItemSpawnRuleID   uint32 `json:"itemSpawnRuleId"`
	WeaponSpawnRuleID uint32 `json:"weaponSpawnRuleId"`
	GadgetsDisabled   uint32 `json:"gadgetsDisabled"`
	Variation         uint32 `json:"variation"`
}

// CustomGadgets is the current-dialect fixed gadget structure. Polarity is
// inverted relative to SpawnRules.GadgetsDisabled: true means enabled.
type CustomGadgets struct {
	Bombs          bool `json:"bombs"`
	Mines          bool `json:"mines"`
	Spikeballs     bool `json:"spikeballs"`
	SideKicks      bool `json:"sideKicks"`
	Snowballs      bool `json:"snowballs"`
	HordeSpawners  bool `json:"hordeSpawners"`
	PressurePlates bool `json:"pressurePlates"`
}

// GadgetSelection is the current-dialect tri-state gadget switch.
type GadgetSelection int

const (
	GadgetsDefault GadgetSelection = iota
	GadgetsOff
	GadgetsCustom
)

func (g GadgetSelection) String() string {
	switch g {
	case GadgetsDefault:
		return "Default"
	case GadgetsOff:
		return "Off"
	case GadgetsCustom:
		return "Custom"
	}
	return "Unknown"
}

type stringerIntMarshal struct {
	Name string `json:"name"`
	ID   int    `json:"id"`
}

func (g GadgetSelection) MarshalJSON() (text []byte, err error) {
	return json.Marshal(stringerIntMarshal{
		Name: g.String(),
		ID:   int(g),
	})
}

func (g *GadgetSelection) UnmarshalJSON(data []byte) (err error) {
	var x stringerIntMarshal
	if err = json.Unmarshal(data, &x); err != nil {
		return
	}
	*g = GadgetSelection(x.ID)
	return
}

// Death is one retained knockout event.
type Death struct {
	Timestamp uint32 `json:"timestamp"` // milliseconds
	Time      string `json:"time"`
	EntityID  int    `json:"entityId"`
}

// Input is one frame of a player's input log, decoded from the packed 14-bit
// field. TauntSlot is 0 when no taunt was triggered, else 1..8.
type Input struct {
	Timestamp uint32  `json:"timestamp"`
	Buttons   Buttons `json:"buttons"`
	TauntSlot int     `json:"tauntSlot"`
}

// Buttons is the 10 boolean button states of one input frame, low bit first
// on the wire.
type Buttons struct {
	Up          bool `json:"up"`
	Down        bool `json:"down"`
	Left        bool `json:"left"`
	Right       bool `json:"right"`
	Jump        bool `json:"jump"`
	LightAttack bool `json:"lightAttack"`
	HeavyAttack bool `json:"heavyAttack"`
	Throw       bool `json:"throw"`
	Dodge       bool `json:"dodge"`
	QuickChat   bool `json:"quickChat"`
}
