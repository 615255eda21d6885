package main

import (
	"crypto/rand"
	"errors"
	"flag"
	"math"
	mrand "math/rand"
	"os"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mixingbowl/tokenauth/jwt"
	"github.com/mixingbowl/tokenauth/logger"
)

func main() {
	var (
		subjects    = flag.Int("subjects", 10000, "number of distinct subjects to issue tokens for")
		concurrency = flag.Int("concurrency", 256, "number of concurrent workers")
		ops         = flag.Int("ops", 200000, "operations per phase (issue, parse, verify)")
		ttl         = flag.Duration("ttl", time.Hour, "token expiration")
		secretEnv   = flag.String("secret-env", "JWT_SECRET", "environment variable holding the secret; a random secret is used when unset")
		verbose     = flag.Bool("v", false, "log every service diagnostic line")
	)
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if *subjects <= 0 || *concurrency <= 0 || *ops <= 0 {
		log.Error("subjects, concurrency, and ops must be > 0")
		os.Exit(2)
	}

	secret := []byte(os.Getenv(*secretEnv))
	if len(secret) == 0 {
		secret = make([]byte, jwt.MinSecretLength)
		if _, err := rand.Read(secret); err != nil {
			log.WithError(err).Fatal("generate secret")
		}
		log.Info("using random secret")
	}

	var sink jwt.Logger = logger.Nop()
	if *verbose {
		sink = logger.NewLogrus(log)
	}

	svc, err := jwt.NewService(jwt.Config{Secret: secret, Expiration: *ttl, Logger: sink})
	if err != nil {
		log.WithError(err).Fatal("build token service")
	}

	names := make([]string, *subjects)
	for i := range names {
		names[i] = uuid.NewString() + "@example.com"
	}

	tokens := make([]string, *subjects)
	startSeed := time.Now()
	for i, name := range names {
		if tokens[i], err = svc.Issue(name); err != nil {
			log.WithError(err).Fatal("seed token")
		}
	}
	log.Infof("seeded %d tokens in %s", len(tokens), time.Since(startSeed).Round(time.Millisecond))

	results := []phaseResult{
		runPhase("issue", *ops, *concurrency, len(names), func(idx int) error {
			_, err := svc.Issue(names[idx])
			return err
		}),
		runPhase("parse", *ops, *concurrency, len(tokens), func(idx int) error {
			subject, err := svc.ParseSubject(tokens[idx])
			if err == nil && subject != names[idx] {
				return errSubjectMismatch
			}
			return err
		}),
		runPhase("verify", *ops, *concurrency, len(tokens), func(idx int) error {
			if !svc.Verify(tokens[idx]) {
				return errRejected
			}
			return nil
		}),
	}

	failed := 0
	for _, r := range results {
		r.report(log)
		failed += r.failed()
	}
	if failed > 0 {
		os.Exit(1)
	}
}

var (
	errSubjectMismatch = errors.New("parsed subject differs from issued subject")
	errRejected        = errors.New("token rejected")
)

// failureReason buckets a failed call for the phase report.
func failureReason(err error) string {
	switch {
	case errors.Is(err, errSubjectMismatch):
		return "subject_mismatch"
	case errors.Is(err, errRejected):
		return "rejected"
	case errors.Is(err, gojwt.ErrTokenExpired):
		return "expired"
	case errors.Is(err, gojwt.ErrTokenSignatureInvalid):
		return "bad_signature"
	case errors.Is(err, gojwt.ErrTokenMalformed):
		return "malformed"
	case errors.Is(err, jwt.ErrInvalidToken):
		return "invalid_token"
	default:
		return "error"
	}
}

// phaseResult is what one phase of the run measured. latencies is sorted.
type phaseResult struct {
	name      string
	elapsed   time.Duration
	latencies []time.Duration
	failures  map[string]int
}

// runPhase calls op ops times across concurrency workers, each call with a
// random index below n, and groups failures by reason.
func runPhase(name string, ops, concurrency, n int, op func(idx int) error) phaseResult {
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		cursor atomic.Int64
	)
	res := phaseResult{
		name:      name,
		latencies: make([]time.Duration, 0, ops),
		failures:  make(map[string]int),
	}

	start := time.Now()
	for w := range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := mrand.New(mrand.NewSource(time.Now().UnixNano() + int64(w)*7919))
			local := make([]time.Duration, 0, ops/concurrency+1)
			reasons := make(map[string]int)
			for cursor.Add(1) <= int64(ops) {
				idx := r.Intn(n)
				t0 := time.Now()
				err := op(idx)
				local = append(local, time.Since(t0))
				if err != nil {
					reasons[failureReason(err)]++
				}
			}

			mu.Lock()
			defer mu.Unlock()
			res.latencies = append(res.latencies, local...)
			for reason, count := range reasons {
				res.failures[reason] += count
			}
		}()
	}
	wg.Wait()

	res.elapsed = time.Since(start)
	slices.Sort(res.latencies)
	return res
}

func (r phaseResult) ops() int { return len(r.latencies) }

func (r phaseResult) failed() int {
	total := 0
	for _, count := range r.failures {
		total += count
	}
	return total
}

func (r phaseResult) throughput() float64 {
	if r.elapsed <= 0 {
		return 0
	}
	return float64(r.ops()) / r.elapsed.Seconds()
}

// latency returns the nearest-rank quantile q (0..1) of the call latencies.
func (r phaseResult) latency(q float64) time.Duration {
	if len(r.latencies) == 0 {
		return 0
	}
	rank := int(math.Ceil(q*float64(len(r.latencies)))) - 1
	return r.latencies[min(max(rank, 0), len(r.latencies)-1)]
}

func (r phaseResult) report(log logrus.FieldLogger) {
	entry := log.WithFields(logrus.Fields{
		"phase":       r.name,
		"ops":         r.ops(),
		"failed":      r.failed(),
		"elapsed":     r.elapsed.Round(time.Millisecond),
		"ops_per_sec": math.Round(r.throughput()),
		"p50":         r.latency(0.50).Round(time.Microsecond),
		"p99":         r.latency(0.99).Round(time.Microsecond),
		"max":         r.latency(1).Round(time.Microsecond),
	})
	if r.failed() == 0 {
		entry.Info("phase complete")
		return
	}

	reasons := make([]string, 0, len(r.failures))
	for reason := range r.failures {
		reasons = append(reasons, reason)
	}
	slices.Sort(reasons)
	for _, reason := range reasons {
		entry.WithField("reason", reason).WithField("count", r.failures[reason]).Warn("phase failures")
	}
}
