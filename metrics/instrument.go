package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "tokenauth"

// Operation label values.
const (
	OpIssue        = "issue"
	OpParseSubject = "parse_subject"
	OpVerify       = "verify"
)

// Result label values.
const (
	ResultValid   = "valid"
	ResultInvalid = "invalid"
)

// TokenService is the surface Instrument wraps. *jwt.Service satisfies it.
type TokenService interface {
	Issue(subject string) (string, error)
	ParseSubject(token string) (string, error)
	Verify(token string) bool
}

// Instrumented is a TokenService that reports to Prometheus.
type Instrumented struct {
	next TokenService

	issued      prometheus.Counter
	issueFailed prometheus.Counter
	checks      *prometheus.CounterVec
	durations   *prometheus.HistogramVec
}

// Instrument registers the collectors with reg and returns the wrapper.
// Registering twice on the same registry returns the registration error.
func Instrument(next TokenService, reg prometheus.Registerer) (*Instrumented, error) {
	i := &Instrumented{
		next: next,
		issued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_issued_total",
			Help:      "Tokens signed successfully.",
		}),
		issueFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "issue_failures_total",
			Help:      "Token signing attempts that returned an error.",
		}),
		checks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "token_checks_total",
			Help:      "Token verifications by operation and result.",
		}, []string{"operation", "result"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Latency of token operations.",
			Buckets:   []float64{.00001, .000025, .00005, .0001, .00025, .0005, .001, .005},
		}, []string{"operation"}),
	}

	registered := make([]prometheus.Collector, 0, 4)
	for _, c := range []prometheus.Collector{i.issued, i.issueFailed, i.checks, i.durations} {
		if err := reg.Register(c); err != nil {
			for _, r := range registered {
				reg.Unregister(r)
			}
			return nil, err
		}
		registered = append(registered, c)
	}
	return i, nil
}

// Issue delegates to the wrapped service.
func (i *Instrumented) Issue(subject string) (string, error) {
	start := time.Now()
	token, err := i.next.Issue(subject)
	i.observe(OpIssue, start)
	if err != nil {
		i.issueFailed.Inc()
		return "", err
	}
	i.issued.Inc()
	return token, nil
}

// ParseSubject delegates to the wrapped service.
func (i *Instrumented) ParseSubject(token string) (string, error) {
	start := time.Now()
	subject, err := i.next.ParseSubject(token)
	i.observe(OpParseSubject, start)
	i.checks.WithLabelValues(OpParseSubject, result(err == nil)).Inc()
	return subject, err
}

// Verify delegates to the wrapped service.
func (i *Instrumented) Verify(token string) bool {
	start := time.Now()
	ok := i.next.Verify(token)
	i.observe(OpVerify, start)
	i.checks.WithLabelValues(OpVerify, result(ok)).Inc()
	return ok
}

func (i *Instrumented) observe(op string, start time.Time) {
	i.durations.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func result(ok bool) string {
	if ok {
		return ResultValid
	}
	return ResultInvalid
}
