package models

import "time"

// Operation symbols accepted by the engine.
const (
	OpAdd = "+"
	OpSub = "-"
	OpMul = "×"
	OpDiv = "÷"
)

// Languages the engine can render worksheets in.
const (
	LangVietnamese = "vi"
	LangEnglish    = "en"
)

// Problem kinds.
const (
	KindArithmetic = "arithmetic"
	KindWord       = "word"
)

// Assembly ordering modes.
const (
	ModeEasyToHard = "easy_to_hard"
	ModeBalanced   = "balanced"
	ModeHardToEasy = "hard_to_easy"
)

// Export kinds and the filenames the browser receives for each.
const (
	ExportQuestions = "questions"
	ExportAnswers   = "answers"
)

// GenerationConfig is the full parameter set for synthesizing a worksheet.
// Field names are part of the engine wire contract.
type GenerationConfig struct {
	Grade               int      `json:"grade"`
	Operations          []string `json:"operations"`
	Count               int      `json:"count"`
	MCQCount            int      `json:"mcq_count"`
	WordCount           int      `json:"word_count"`
	MinValue            int      `json:"min_value"`
	MaxValue            int      `json:"max_value"`
	IncludeWordProblems bool     `json:"include_word_problems"`
	IncludeDistractors  bool     `json:"include_distractors"`
	Seed                *int64   `json:"seed,omitempty"`
	Language            string   `json:"language"`
}

// Problem is produced only by the engine and held client-side as read-only
// presentation data. A whole set is replaced on every generate/upload/assemble;
// problems are never mutated or merged in place.
type Problem struct {
	ID         string   `bson:"id" json:"id"`
	Text       string   `bson:"text" json:"text"`
	Answer     string   `bson:"answer" json:"answer"`
	Choices    []string `bson:"choices,omitempty" json:"choices,omitempty"`
	Kind       string   `bson:"kind" json:"kind"`
	Difficulty *float64 `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
	Source     string   `bson:"source,omitempty" json:"source,omitempty"`
}

// Evaluation is the engine's difficulty summary over a problem set. It is
// always computed fresh by the engine, never derived or cached here.
type Evaluation struct {
	AverageDifficulty float64        `bson:"average_difficulty" json:"average_difficulty"`
	Buckets           map[string]int `bson:"buckets,omitempty" json:"buckets,omitempty"`
	Kinds             map[string]int `bson:"kinds,omitempty" json:"kinds,omitempty"`
	Operations        map[string]int `bson:"operations,omitempty" json:"operations,omitempty"`
	Notes             []string       `bson:"notes,omitempty" json:"notes,omitempty"`
}

// AssemblePayload asks the engine to build an ordered exam sequence out of an
// existing pool. The engine is the arbiter of feasibility and may return a
// shorter sequence than requested.
type AssemblePayload struct {
	Problems  []Problem `json:"problems"`
	Count     int       `json:"count"`
	MCQCount  int       `json:"mcq_count"`
	WordCount int       `json:"word_count"`
	Mode      string    `json:"mode"`
}

// SavedWorksheet is a library entry: a finished problem set stored together
// with the configuration that produced it and its evaluation.
type SavedWorksheet struct {
	ID         string           `bson:"_id,omitempty" json:"id"`
	Title      string           `bson:"title" json:"title"`
	Config     GenerationConfig `bson:"config" json:"config"`
	Problems   []Problem        `bson:"problems" json:"problems"`
	Evaluation *Evaluation      `bson:"evaluation,omitempty" json:"evaluation,omitempty"`
	CreatedAt  time.Time        `bson:"created_at" json:"created_at"`
}
