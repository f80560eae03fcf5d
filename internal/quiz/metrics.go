package quiz

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	quizzesAssembled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quizgate_quizzes_assembled_total",
		Help: "Number of quiz views assembled for candidates.",
	})

	submissionsGraded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quizgate_submissions_graded_total",
		Help: "Number of graded submissions by outcome.",
	}, []string{"result"})
)
