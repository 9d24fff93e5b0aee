package entity

type QuestionAnswer struct {
	Question            Question `json:"question"`
	SelectedChoiceIndex int      `json:"selected_choice_index" validate:"min=0,max=3"`
}

// SelectedChoice returns the choice the user picked.
func (qa QuestionAnswer) SelectedChoice() Choice {
	return qa.Question.Choices[qa.SelectedChoiceIndex]
}

type ProfileDescription struct {
	Title string `json:"title,omitempty"`
	Text  string `json:"text"`
}

type BestGame struct {
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

// PlayerProfile is the free-form self description of a player.
type PlayerProfile struct {
	ID                     int                 `json:"id" validate:"required"`
	Name                   string              `json:"name" validate:"required"`
	Position               string              `json:"position"`
	Birth                  string              `json:"birth,omitempty"`
	Height                 int                 `json:"height,omitempty"`
	Weight                 int                 `json:"weight,omitempty"`
	From                   string              `json:"from,omitempty"`
	Nickname               string              `json:"nickname,omitempty"`
	WhatIsSoccer           string              `json:"what_is_soccer,omitempty"`
	JerseyNumberCommitment string              `json:"jersey_number_commitment,omitempty"`
	PregameRitual          string              `json:"pregame_ritual,omitempty"`
	LookAtMyPlay           []string            `json:"look_at_my_play,omitempty"`
	Hero                   string              `json:"hero,omitempty"`
	PersonalityOneWord     string              `json:"personality_one_word,omitempty"`
	CharmPoint             string              `json:"charm_point,omitempty"`
	BestInTeamNonSoccer    string              `json:"best_in_team_non_soccer,omitempty"`
	Motto                  string              `json:"motto,omitempty"`
	MessageToFans          string              `json:"message_to_fans,omitempty"`
	Description            *ProfileDescription `json:"description,omitempty"`
	BestGame               *BestGame           `json:"best_game,omitempty"`
}

// DiagnosisInput carries exactly one of quiz answers or a player profile.
type DiagnosisInput struct {
	Answers []QuestionAnswer `json:"question_answers,omitempty" validate:"omitempty,len=10,dive"`
	Profile *PlayerProfile   `json:"profile,omitempty"`
}

// DiagnosisRequest is what the external diagnoser receives.
type DiagnosisRequest struct {
	Seed  int64
	Input DiagnosisInput
}

// PrimaryDiagnosis is the raw judgement returned by the external model.
// Primary is deliberately not validated here: an unknown label is a hard
// failure raised by scoring, not a retryable bad payload.
type PrimaryDiagnosis struct {
	Primary         string `json:"primary"`
	SpecialistScore int    `json:"specialist_score" validate:"min=0,max=100"`
	Reason          string `json:"reason" validate:"required"`
}

// Diagnosis is the final result handed back to callers.
type Diagnosis struct {
	Primary         Category       `json:"primary"`
	SpecialistScore int            `json:"specialist_score"`
	Scores          AffinityVector `json:"scores"`
	Comment         string         `json:"comment"`
}
