package lab

// Scenario is a named simulated attack storyline that seeds alerts and
// incidents and owns a set of graded questions.
type Scenario struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Difficulty  string   `json:"difficulty"`
	Minutes     int      `json:"minutes,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Description string   `json:"description"`
}

// Question is a free-text graded lab question
type Question struct {
	ID     string `json:"id"`
	Prompt string `json:"question"`
	Hint   string `json:"hint"`
	Points int    `json:"points"`
}

// Challenge is a query-writing graded exercise validated against an
// expected result shape rather than free text.
type Challenge struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
	Hint        string `json:"hint"`
	Points      int    `json:"points"`
}

// AnswerResult is the backend's grading verdict for a single submission
type AnswerResult struct {
	Correct         bool   `json:"correct"`
	PointsAwarded   int    `json:"points_awarded"`
	Feedback        string `json:"feedback"`
	ExampleSolution string `json:"example_solution,omitempty"`
}

// Difficulty tiers
const (
	DifficultyBeginner     = "Beginner"
	DifficultyIntermediate = "Intermediate"
	DifficultyAdvanced     = "Advanced"
	DifficultyExpert       = "Expert"
)
