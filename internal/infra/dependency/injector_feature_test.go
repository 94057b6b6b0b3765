package dependency

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/cucumber/godog/colors"
	"gorm.io/gorm"

	"github.com/commitly/backend/config"
	"github.com/commitly/backend/internal/infra/db/dbtest"
	"github.com/commitly/backend/internal/integration/persistence/model"
)

const testPassword = "s3cret-pass"

// TestAPIFeatures runs the HTTP scenarios in features/ against a fully wired injector
// backed by SQLite and miniredis.
func TestAPIFeatures(t *testing.T) {
	opts := godog.Options{
		Format:      "pretty",
		Paths:       []string{"features"},
		Output:      colors.Colored(os.Stdout),
		Concurrency: 1,
		Randomize:   0,
		Strict:      true,
		TestingT:    t,
	}

	// Allow tag filtering via environment variable
	if tags := os.Getenv("GODOG_TAGS"); tags != "" {
		opts.Tags = tags
	}

	suite := godog.TestSuite{
		Name: "commitly-api",
		ScenarioInitializer: func(sc *godog.ScenarioContext) {
			initializeAPIScenario(t, sc)
		},
		Options: &opts,
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

type apiScenario struct {
	t        *testing.T
	db       *gorm.DB
	injector *Injector
	server   *httptest.Server
	client   *http.Client

	headers     map[string]string
	accessToken string
	tokens      map[string]string
	saved       map[string]string
	response    *apiResponse
}

type apiResponse struct {
	status int
	body   any
}

var tables = map[string]any{
	"users":             &model.UserModel{},
	"refresh_tokens":    &model.RefreshTokenModel{},
	"goals":             &model.GoalModel{},
	"activities":        &model.ActivityModel{},
	"streaks":           &model.StreakModel{},
	"completion_events": &model.CompletionModel{},
	"partnerships":      &model.PartnershipModel{},
	"notifications":     &model.NotificationModel{},
	"email_queue":       &model.EmailQueueModel{},
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Environment: "test"},
		JWT: config.JWTConfig{
			Secret:             "test-jwt-secret-key-for-testing-purposes",
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenExpiry: 24 * time.Hour,
		},
		Email: config.EmailConfig{
			FromName:      "Commitly",
			FromEmail:     "noreply@commitly.test",
			AppBaseURL:    "https://app.commitly.test",
			WorkerEnabled: true,
			PollInterval:  time.Second,
			BatchSize:     50,
		},
		Lock: config.LockConfig{
			TTL:          5 * time.Second,
			Wait:         2 * time.Second,
			RetryBackoff: 10 * time.Millisecond,
		},
	}
}

func initializeAPIScenario(t *testing.T, ctx *godog.ScenarioContext) {
	s := &apiScenario{t: t}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, s.before()
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if s.server != nil {
			s.server.Close()
		}
		return ctx, nil
	})

	// Background steps
	ctx.Given(`^the API server is running$`, s.theAPIServerIsRunning)

	// User steps
	ctx.Given(`^a user "([^"]*)" is registered$`, s.aUserIsRegistered)
	ctx.Given(`^I am logged in as "([^"]*)"$`, s.iAmLoggedInAs)
	ctx.Given(`^"([^"]*)" is my accountability partner$`, s.isMyAccountabilityPartner)

	// Goal steps
	ctx.Given(`^I created a "([^"]*)" goal "([^"]*)"$`, s.iCreatedAGoal)
	ctx.Given(`^I created a "([^"]*)" goal "([^"]*)" with activities "([^"]*)"$`, s.iCreatedAGoalWithActivities)
	ctx.When(`^I check in on the goal today$`, s.iCheckInToday)
	ctx.When(`^I check in on the goal (-?\d+) days ago$`, s.iCheckInDaysAgo)
	ctx.When(`^the email worker processes the queue$`, s.theEmailWorkerProcessesTheQueue)

	// Header steps
	ctx.Given(`^the header is empty$`, s.theHeaderIsEmpty)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, s.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, s.iSendARequestToWithBody)
	ctx.Step(`^I save the response field "([^"]*)" as "([^"]*)"$`, s.iSaveTheResponseFieldAs)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, s.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, s.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should not exist$`, s.theResponseFieldShouldNotExist)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, s.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values:$`, s.theDbShouldContainObjectsInWithTheValues)
}

func (s *apiScenario) before() error {
	s.headers = make(map[string]string)
	s.tokens = make(map[string]string)
	s.saved = make(map[string]string)
	s.accessToken = ""
	s.response = nil
	s.client = &http.Client{Timeout: 10 * time.Second}

	s.db = dbtest.NewDB(s.t)
	redisClient, _ := dbtest.NewRedis(s.t)

	injector, err := NewInjector(testConfig(), s.db, redisClient)
	if err != nil {
		return fmt.Errorf("failed to wire injector: %w", err)
	}
	s.injector = injector
	s.server = httptest.NewServer(injector.Router.Engine())
	return nil
}

func (s *apiScenario) theAPIServerIsRunning() error {
	if err := s.executeRequest(http.MethodGet, "/health", nil); err != nil {
		return err
	}
	return s.theResponseStatusShouldBe(http.StatusOK)
}

func (s *apiScenario) aUserIsRegistered(email string) error {
	_, err := s.register(email)
	return err
}

func (s *apiScenario) register(email string) (string, error) {
	if token, ok := s.tokens[email]; ok {
		return token, nil
	}

	current := s.accessToken
	s.accessToken = ""
	defer func() { s.accessToken = current }()

	payload := fmt.Sprintf(`{"email": %q, "display_name": %q, "password": %q, "timezone": "UTC"}`,
		email, strings.Split(email, "@")[0], testPassword)
	if err := s.executeRequest(http.MethodPost, "/api/v1/auth/register", []byte(payload)); err != nil {
		return "", err
	}
	if err := s.theResponseStatusShouldBe(http.StatusCreated); err != nil {
		return "", err
	}

	token, ok := getFieldValue(s.response.body, "access_token").(string)
	if !ok {
		return "", fmt.Errorf("register response has no access token: %v", s.response.body)
	}
	s.tokens[email] = token
	return token, nil
}

func (s *apiScenario) iAmLoggedInAs(email string) error {
	token, err := s.register(email)
	if err != nil {
		return err
	}
	s.accessToken = token
	return nil
}

func (s *apiScenario) isMyAccountabilityPartner(partnerEmail string) error {
	if _, err := s.register(partnerEmail); err != nil {
		return err
	}
	myToken := s.accessToken

	payload := fmt.Sprintf(`{"partner_email": %q}`, partnerEmail)
	if err := s.executeRequest(http.MethodPost, "/api/v1/partnerships", []byte(payload)); err != nil {
		return err
	}
	if err := s.theResponseStatusShouldBe(http.StatusCreated); err != nil {
		return err
	}
	partnershipID := fmt.Sprintf("%v", getFieldValue(s.response.body, "id"))

	s.accessToken = s.tokens[partnerEmail]
	defer func() { s.accessToken = myToken }()

	if err := s.executeRequest(http.MethodPost, "/api/v1/partnerships/"+partnershipID+"/respond", []byte(`{"accept": true}`)); err != nil {
		return err
	}
	return s.theResponseStatusShouldBe(http.StatusOK)
}

func (s *apiScenario) iCreatedAGoal(goalType, title string) error {
	return s.createGoal(goalType, title, nil)
}

func (s *apiScenario) iCreatedAGoalWithActivities(goalType, title, activities string) error {
	return s.createGoal(goalType, title, strings.Split(activities, ","))
}

func (s *apiScenario) createGoal(goalType, title string, activities []string) error {
	body := map[string]any{
		"title":     title,
		"goal_type": goalType,
	}
	if len(activities) > 0 {
		body["activities"] = activities
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	if err := s.executeRequest(http.MethodPost, "/api/v1/goals", payload); err != nil {
		return err
	}
	if err := s.theResponseStatusShouldBe(http.StatusCreated); err != nil {
		return err
	}
	return s.iSaveTheResponseFieldAs("id", "goal_id")
}

func (s *apiScenario) iCheckInToday() error {
	return s.executeRequest(http.MethodPost, s.replacePlaceholders("/api/v1/goals/{{goal_id}}/completions"), nil)
}

func (s *apiScenario) iCheckInDaysAgo(days int) error {
	date := time.Now().UTC().AddDate(0, 0, -days).Format("2006-01-02")
	payload := fmt.Sprintf(`{"completion_date": %q}`, date)
	return s.executeRequest(http.MethodPost, s.replacePlaceholders("/api/v1/goals/{{goal_id}}/completions"), []byte(payload))
}

func (s *apiScenario) theEmailWorkerProcessesTheQueue() error {
	if s.injector.EmailWorker == nil {
		return errors.New("email worker is disabled")
	}
	s.injector.EmailWorker.ProcessNow(context.Background())
	return nil
}

func (s *apiScenario) theHeaderIsEmpty() error {
	s.headers = make(map[string]string)
	s.accessToken = ""
	return nil
}

func (s *apiScenario) iSendARequestTo(method, path string) error {
	return s.executeRequest(method, s.replacePlaceholders(path), nil)
}

func (s *apiScenario) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(s.replacePlaceholders(body.Content))
	}
	return s.executeRequest(method, s.replacePlaceholders(path), payload)
}

func (s *apiScenario) iSaveTheResponseFieldAs(field, name string) error {
	if s.response == nil {
		return errors.New("no response received")
	}
	value := getFieldValue(s.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, s.response.body)
	}
	s.saved[name] = fmt.Sprintf("%v", value)
	return nil
}

func (s *apiScenario) replacePlaceholders(content string) string {
	for name, value := range s.saved {
		content = strings.ReplaceAll(content, "{{"+name+"}}", value)
	}
	return content
}

func (s *apiScenario) executeRequest(method, path string, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, s.server.URL+path, body)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if s.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.accessToken)
	}
	for key, value := range s.headers {
		req.Header.Set(key, value)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	s.response = &apiResponse{status: resp.StatusCode}

	var decoded map[string]any
	if err := json.Unmarshal(bodyBytes, &decoded); err != nil {
		s.response.body = string(bodyBytes)
	} else {
		s.response.body = decoded
	}

	return nil
}

func (s *apiScenario) theResponseStatusShouldBe(expectedStatus int) error {
	if s.response == nil {
		return errors.New("no response received")
	}
	if s.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, s.response.status, s.response.body)
	}
	return nil
}

func (s *apiScenario) theResponseFieldShouldBe(field, expectedValue string) error {
	if s.response == nil {
		return errors.New("no response received")
	}

	value := getFieldValue(s.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, s.response.body)
	}

	if actual := fmt.Sprintf("%v", value); actual != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actual)
	}
	return nil
}

func (s *apiScenario) theResponseFieldShouldExist(field string) error {
	if s.response == nil {
		return errors.New("no response received")
	}
	if getFieldValue(s.response.body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, s.response.body)
	}
	return nil
}

func (s *apiScenario) theResponseFieldShouldNotExist(field string) error {
	if s.response == nil {
		return errors.New("no response received")
	}
	if value := getFieldValue(s.response.body, field); value != nil {
		return fmt.Errorf("field '%s' unexpectedly present: %v", field, value)
	}
	return nil
}

func (s *apiScenario) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	return s.countRows(quantity, table, nil)
}

func (s *apiScenario) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(content.Content), &criteria); err != nil {
		return err
	}
	return s.countRows(quantity, table, criteria)
}

func (s *apiScenario) countRows(quantity int, table string, criteria map[string]any) error {
	entity, ok := tables[table]
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	query := s.db.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	if err := query.Find(entitySlicePtr.Interface()).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if count := entitySlicePtr.Elem().Len(); count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	var field any = object

	for _, currentField := range strings.Split(dotSeparatedField, ".") {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			arr, ok := field.([]any)
			if !ok || i >= len(arr) {
				return nil
			}
			field = arr[i]
			continue
		}

		m, ok := field.(map[string]any)
		if !ok {
			return nil
		}
		field = m[currentField]
	}

	return field
}
