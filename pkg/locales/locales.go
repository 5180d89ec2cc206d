package locales

import (
	_ "embed"
	"encoding/json"
	"log"
)

//go:embed locales.json
var localesJSON []byte

// Locales содержит все текстовые строки из locales.json
type Locales struct {
	Start    Start    `json:"start"`
	Help     Help     `json:"help"`
	Common   Common   `json:"common"`
	Profile  Profile  `json:"profile"`
	Water    Water    `json:"water"`
	Food     Food     `json:"food"`
	Workout  Workout  `json:"workout"`
	Progress Progress `json:"progress"`
	Graphs   Graphs   `json:"graphs"`
}

type Start struct {
	Text string `json:"text"`
}

type Help struct {
	Text string `json:"text"`
}

type Common struct {
	NeedProfile     string `json:"need_profile"`
	InvalidNumber   string `json:"invalid_number"`
	NothingToCancel string `json:"nothing_to_cancel"`
	Unknown         string `json:"unknown"`
}

type Profile struct {
	Intro         string `json:"intro"`
	AskHeight     string `json:"ask_height"`
	AskAge        string `json:"ask_age"`
	AskGender     string `json:"ask_gender"`
	AskActivity   string `json:"ask_activity"`
	AskCity       string `json:"ask_city"`
	InvalidGender string `json:"invalid_gender"`
	Cancelled     string `json:"cancelled"`
	TempUnknown   string `json:"temp_unknown"`
	Summary       string `json:"summary"`
}

type Water struct {
	Usage    string `json:"usage"`
	GoalMet  string `json:"goal_met"`
	Progress string `json:"progress"`
}

type Food struct {
	Usage     string `json:"usage"`
	Searching string `json:"searching"`
	NotFound  string `json:"not_found"`
	Found     string `json:"found"`
	Logged    string `json:"logged"`
}

type Workout struct {
	Usage  string `json:"usage"`
	Logged string `json:"logged"`
}

type Progress struct {
	Text string `json:"text"`
}

type Graphs struct {
	Empty           string `json:"empty"`
	Failed          string `json:"failed"`
	CaptionHeader   string `json:"caption_header"`
	CaptionWater    string `json:"caption_water"`
	CaptionCalories string `json:"caption_calories"`
}

var L *Locales

func init() {
	L = &Locales{}
	if err := json.Unmarshal(localesJSON, L); err != nil {
		log.Fatalf("Не удалось распарсить locales.json: %v", err)
	}
}

// Get возвращает указатель на локали
func Get() *Locales {
	return L
}
