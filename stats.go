package timetable

import "sort"

// SubjectStats aggregates the records of one subject.
type SubjectStats struct {
	Subject   string `json:"subject"`
	Records   int    `json:"records"`
	Completed int    `json:"completed"`
	// AverageScore is the mean final score of the completed records, 0 when
	// there are none.
	AverageScore      float64 `json:"average_score"`
	StudyHours        float64 `json:"study_hours"`
	AverageDifficulty float64 `json:"average_difficulty"`
}

// RecordStats summarises a record history.
type RecordStats struct {
	Records   int `json:"records"`
	Subjects  int `json:"subjects"`
	Completed int `json:"completed"`
	// AverageScore is the mean final score over every completed record.
	AverageScore float64 `json:"average_score"`
	// BySubject is ordered by subject name.
	BySubject []SubjectStats `json:"by_subject"`
}

// Analyze computes overview and per-subject statistics for records.
func Analyze(records []StudyRecord) RecordStats {
	st := RecordStats{Records: len(records)}

	type acc struct {
		SubjectStats
		scoreSum      float64
		difficultySum int
	}
	bySubject := make(map[string]*acc)
	var scoreSum float64
	for _, r := range records {
		a, ok := bySubject[r.Subject]
		if !ok {
			a = &acc{SubjectStats: SubjectStats{Subject: r.Subject}}
			bySubject[r.Subject] = a
		}
		a.Records++
		a.StudyHours += r.StudyHours
		a.difficultySum += r.Difficulty
		if r.Completed() {
			a.Completed++
			a.scoreSum += r.FinalScore
			st.Completed++
			scoreSum += r.FinalScore
		}
	}
	if st.Completed > 0 {
		st.AverageScore = scoreSum / float64(st.Completed)
	}

	st.Subjects = len(bySubject)
	st.BySubject = make([]SubjectStats, 0, len(bySubject))
	for _, a := range bySubject {
		s := a.SubjectStats
		s.AverageDifficulty = float64(a.difficultySum) / float64(a.Records)
		if a.Completed > 0 {
			s.AverageScore = a.scoreSum / float64(a.Completed)
		}
		st.BySubject = append(st.BySubject, s)
	}
	sort.Slice(st.BySubject, func(i, j int) bool {
		return st.BySubject[i].Subject < st.BySubject[j].Subject
	})
	return st
}
