package smoke

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/okian/titanic/pkg/logger"
)

// FixtureBody is the reference passenger: score 7, probability about 0.8909.
const FixtureBody = `{"pclass":1,"sex":"female","age":29,"sibsp":0,"parch":0,"fare":211.34,"embarked":"S"}`

const (
	fixtureScore       = 7
	fixtureProbability = 0.8909
	probabilityEpsilon = 1e-4
	pageLimit          = 5
	farPage            = 1_000_000
)

type check struct {
	name string
	run  func(ctx context.Context, c *httpClient, cfg Config) error
}

func checks() []check {
	return []check{
		{"passengers health", checkPassengersHealth},
		{"predictor health", checkPredictorHealth},
		{"reference prediction", checkFixture},
		{"missing field rejected", checkMissingField},
		{"pagination bounds", checkPagination},
		{"summary partitions", checkSummary},
		{"concurrent predictions agree", checkPurity},
	}
}

// Run executes every check in order and never stops early.
func Run(ctx context.Context, cfg Config, l logger.Logger) Report {
	cfg = cfg.withDefaults()
	if l == nil {
		l = logger.NewNop()
	}
	client := newHTTPClient(cfg.Timeout)
	start := time.Now()

	l.Info(ctx, "starting smoke checks",
		logger.String("passengers", cfg.PassengersURL),
		logger.String("predictor", cfg.PredictorURL),
	)

	var report Report
	for _, ch := range checks() {
		t0 := time.Now()
		err := ch.run(ctx, client, cfg)
		res := Result{Name: ch.name, Err: err, Duration: time.Since(t0)}
		report.Results = append(report.Results, res)
		if err != nil {
			l.Warn(ctx, "check failed", logger.String("check", ch.name), logger.Error(err))
		} else {
			l.Debug(ctx, "check passed", logger.String("check", ch.name))
		}
	}
	report.Duration = time.Since(start)
	return report
}

type healthBody struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

func checkHealth(ctx context.Context, c *httpClient, base string) error {
	var h healthBody
	code, err := c.getJSON(ctx, base+"/health", &h)
	if err != nil {
		return err
	}
	if code != 200 {
		return fmt.Errorf("health returned status %d", code)
	}
	if h.Status != "ok" {
		return fmt.Errorf("health status %q", h.Status)
	}
	if _, err := time.Parse(time.RFC3339, h.Timestamp); err != nil {
		return fmt.Errorf("health timestamp %q: %w", h.Timestamp, err)
	}
	return nil
}

func checkPassengersHealth(ctx context.Context, c *httpClient, cfg Config) error {
	return checkHealth(ctx, c, cfg.PassengersURL)
}

func checkPredictorHealth(ctx context.Context, c *httpClient, cfg Config) error {
	return checkHealth(ctx, c, cfg.PredictorURL)
}

type predictionBody struct {
	Survived    bool    `json:"survived"`
	Probability float64 `json:"probability"`
	Score       int     `json:"score"`
}

func predict(ctx context.Context, c *httpClient, cfg Config) (predictionBody, error) {
	var p predictionBody
	code, err := c.postJSON(ctx, cfg.PredictorURL+"/titanic/predict", FixtureBody, &p)
	if err != nil {
		return p, err
	}
	if code != 200 {
		return p, fmt.Errorf("predict returned status %d", code)
	}
	return p, nil
}

func checkFixture(ctx context.Context, c *httpClient, cfg Config) error {
	p, err := predict(ctx, c, cfg)
	if err != nil {
		return err
	}
	switch {
	case p.Score != fixtureScore:
		return fmt.Errorf("score %d, want %d", p.Score, fixtureScore)
	case math.Abs(p.Probability-fixtureProbability) > probabilityEpsilon:
		return fmt.Errorf("probability %.4f, want %.4f", p.Probability, fixtureProbability)
	case !p.Survived:
		return errors.New("reference passenger predicted not to survive")
	}
	return nil
}

type validationBody struct {
	Error          string   `json:"error"`
	RequiredFields []string `json:"required_fields"`
}

func checkMissingField(ctx context.Context, c *httpClient, cfg Config) error {
	var v validationBody
	code, err := c.postJSON(ctx, cfg.PredictorURL+"/titanic/predict", `{"pclass":1,"sex":"female"}`, &v)
	if err != nil {
		return err
	}
	if code != 400 {
		return fmt.Errorf("predict without age returned status %d, want 400", code)
	}
	if !strings.Contains(v.Error, "age") {
		return fmt.Errorf("error %q does not name the missing field", v.Error)
	}
	return nil
}

type pageBody struct {
	Total int              `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
	Data  []map[string]any `json:"data"`
}

func checkPagination(ctx context.Context, c *httpClient, cfg Config) error {
	base := strings.TrimSuffix(cfg.PassengersURL+cfg.PathPrefix, "/") + "/"

	var first pageBody
	code, err := c.getJSON(ctx, fmt.Sprintf("%s?page=1&limit=%d", base, pageLimit), &first)
	if err != nil {
		return err
	}
	if code != 200 {
		return fmt.Errorf("list returned status %d", code)
	}
	if len(first.Data) > pageLimit {
		return fmt.Errorf("page holds %d records, limit is %d", len(first.Data), pageLimit)
	}
	if want := min(first.Total, pageLimit); len(first.Data) != want {
		return fmt.Errorf("first page holds %d records, want %d", len(first.Data), want)
	}

	var far pageBody
	if _, err := c.getJSON(ctx, fmt.Sprintf("%s?page=%d&limit=%d", base, farPage, pageLimit), &far); err != nil {
		return err
	}
	if len(far.Data) != 0 {
		return fmt.Errorf("page %d holds %d records, want none", farPage, len(far.Data))
	}
	return nil
}

type summaryBody struct {
	Total    int            `json:"total"`
	Survived int            `json:"survived"`
	ByClass  map[string]int `json:"by_class"`
	BySex    map[string]int `json:"by_sex"`
}

func checkSummary(ctx context.Context, c *httpClient, cfg Config) error {
	var s summaryBody
	code, err := c.getJSON(ctx, strings.TrimSuffix(cfg.PassengersURL+cfg.PathPrefix, "/")+"/stats/summary", &s)
	if err != nil {
		return err
	}
	if code != 200 {
		return fmt.Errorf("summary returned status %d", code)
	}
	if sum := s.ByClass["1"] + s.ByClass["2"] + s.ByClass["3"]; sum != s.Total {
		return fmt.Errorf("class counts sum to %d, total is %d", sum, s.Total)
	}
	if sum := s.BySex["male"] + s.BySex["female"]; sum != s.Total {
		return fmt.Errorf("sex counts sum to %d, total is %d", sum, s.Total)
	}
	if s.Survived > s.Total {
		return fmt.Errorf("%d survivors out of %d", s.Survived, s.Total)
	}
	return nil
}

// checkPurity fans the reference prediction out over cfg.Workers goroutines
// and requires every answer to be identical.
func checkPurity(ctx context.Context, c *httpClient, cfg Config) error {
	jobs := make(chan struct{}, cfg.Workers*2)
	results := make(chan predictionBody, cfg.Repeats)
	errs := make(chan error, cfg.Repeats)

	var wg sync.WaitGroup
	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				p, err := predict(ctx, c, cfg)
				if err != nil {
					errs <- err
					continue
				}
				results <- p
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := 0; i < cfg.Repeats; i++ {
			select {
			case <-ctx.Done():
				return
			case jobs <- struct{}{}:
			}
		}
	}()

	wg.Wait()
	close(results)
	close(errs)

	if err, ok := <-errs; ok {
		return err
	}
	var first *predictionBody
	n := 0
	for p := range results {
		n++
		if first == nil {
			p := p
			first = &p
			continue
		}
		if p != *first {
			return fmt.Errorf("predictions differ: %+v vs %+v", p, *first)
		}
	}
	if n != cfg.Repeats {
		return fmt.Errorf("%d of %d predictions completed", n, cfg.Repeats)
	}
	return nil
}
