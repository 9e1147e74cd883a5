// Package vocab holds the vocabulary catalog: courses, built-in word lists,
// and the user's imported extension lists.
package vocab

import (
	"errors"
	"fmt"
)

// ErrUnknownCourse is returned for course IDs outside the known set.
var ErrUnknownCourse = errors.New("vocab: unknown course")

// ErrWordNotFound is returned when a word ID is not in a course.
var ErrWordNotFound = errors.New("vocab: word not found")

// Word is a single vocabulary item. Words are immutable once loaded.
type Word struct {
	ID           string `json:"id"`
	Text         string `json:"en"`
	Meaning      string `json:"zh"`
	Phonetic     string `json:"phonetic,omitempty"`
	PartOfSpeech string `json:"type,omitempty"`
	Example      string `json:"example,omitempty"`
}

// CourseID identifies a course.
type CourseID string

const (
	Junior1600    CourseID = "junior_1600"
	JuniorPhrases CourseID = "junior_phrases"
	Senior3500    CourseID = "senior_3500"
	SeniorPhrases CourseID = "senior_phrases"
)

// Course describes a course for display.
type Course struct {
	ID          CourseID
	Title       string
	Description string
}

// Courses lists every course in display order.
var Courses = []Course{
	{ID: Junior1600, Title: "Junior High 1600", Description: "Core words for junior high school"},
	{ID: JuniorPhrases, Title: "Junior High Phrases", Description: "Common phrases for junior high school"},
	{ID: Senior3500, Title: "Senior High 3500", Description: "Core words for senior high school"},
	{ID: SeniorPhrases, Title: "Senior High Phrases", Description: "Common phrases for senior high school"},
}

// ParseCourse validates a course ID string.
func ParseCourse(s string) (CourseID, error) {
	for _, c := range Courses {
		if string(c.ID) == s {
			return c.ID, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCourse, s)
}

// GetCourse returns the course description for id.
func GetCourse(id CourseID) (Course, error) {
	for _, c := range Courses {
		if c.ID == id {
			return c, nil
		}
	}
	return Course{}, fmt.Errorf("%w: %q", ErrUnknownCourse, id)
}

// IDs returns the IDs of words in order.
func IDs(words []Word) []string {
	ids := make([]string, len(words))
	for i, w := range words {
		ids[i] = w.ID
	}
	return ids
}

// Index maps word IDs to words. The first occurrence of an ID wins.
func Index(words []Word) map[string]Word {
	idx := make(map[string]Word, len(words))
	for _, w := range words {
		if _, ok := idx[w.ID]; !ok {
			idx[w.ID] = w
		}
	}
	return idx
}
