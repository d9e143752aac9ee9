package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce          sync.Once
	intakeSubmissionsVec  *prometheus.CounterVec
	intakeRejectedVec     *prometheus.CounterVec
	uploadLatencyHist     prometheus.Histogram
	quizSubmissionsVec    *prometheus.CounterVec
	quizScoreDistribution prometheus.Histogram
)

// RegisterMetrics initialises the Prometheus collectors used by the intake workflow.
func RegisterMetrics() {
	registerOnce.Do(func() {
		intakeSubmissionsVec = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "intake_submissions_total",
			Help: "Total number of candidate detail submissions by outcome.",
		}, []string{"outcome"})

		intakeRejectedVec = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "intake_uploads_rejected_total",
			Help: "Total number of rejected candidate uploads by reason.",
		}, []string{"reason"})

		uploadLatencyHist = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "intake_upload_latency_seconds",
			Help:    "Latency distribution for storing candidate attachments.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		})

		quizSubmissionsVec = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quiz_submissions_total",
			Help: "Total number of quiz submissions by score attribution outcome.",
		}, []string{"recorded"})

		quizScoreDistribution = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "quiz_score",
			Help:    "Distribution of computed quiz scores.",
			Buckets: []float64{0, 5, 10, 15, 20, 25, 30, 35},
		})

		prometheus.MustRegister(intakeSubmissionsVec, intakeRejectedVec, uploadLatencyHist, quizSubmissionsVec, quizScoreDistribution)
	})
}

// IntakeSubmissions exposes the counter for detail submissions.
func IntakeSubmissions() *prometheus.CounterVec {
	RegisterMetrics()
	return intakeSubmissionsVec
}

// UploadRejected exposes the counter for rejected uploads.
func UploadRejected() *prometheus.CounterVec {
	RegisterMetrics()
	return intakeRejectedVec
}

// UploadLatency exposes the attachment storage latency histogram.
func UploadLatency() prometheus.Histogram {
	RegisterMetrics()
	return uploadLatencyHist
}

// QuizSubmissions exposes the counter for quiz submissions.
func QuizSubmissions() *prometheus.CounterVec {
	RegisterMetrics()
	return quizSubmissionsVec
}

// QuizScores exposes the score distribution histogram.
func QuizScores() prometheus.Histogram {
	RegisterMetrics()
	return quizScoreDistribution
}
