package poseapi

import "fmt"

// Joint is one tracked body landmark with its screen position and
// correctness flag. Coordinates are pixels in the reference video
// resolution; callers map them to their own drawing surface.
type Joint struct {
	JointName string  `json:"joint_name"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	IsCorrect bool    `json:"is_correct"`
}

// SkeletonSegment is one edge between two joints. Segments are drawn
// independently of joint markers and may reference joints that are not
// present in the live feedback list.
type SkeletonSegment struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Adjustment describes one joint whose angle deviates beyond tolerance.
type Adjustment struct {
	JointName     string  `json:"joint_name"`
	Adjustment    string  `json:"adjustment"` // e.g. "bend", "straighten", "increase", "decrease"
	OriginalAngle float64 `json:"original_angle"`
	NewAngle      float64 `json:"new_angle"`
	Difference    float64 `json:"difference"`
}

// ReferencePose identifies the stored pose a comparison ran against.
type ReferencePose struct {
	PoseName   string `json:"pose_name"`
	PoseNumber int    `json:"pose_number"`
}

// ComparisonResult is the full outcome of one compare call. It is an
// immutable snapshot: the engine replaces it wholesale, never merges.
type ComparisonResult struct {
	ReferencePose     ReferencePose     `json:"reference_pose"`
	PoseAccuracy      *float64          `json:"pose_accuracy"` // nil when the service omits it
	AdjustmentsNeeded []Adjustment      `json:"adjustments_needed"`
	Skeleton          []SkeletonSegment `json:"skeleton"`
	LiveFeedback      []Joint           `json:"live_feedback"`
	AudioFeedback     string            `json:"audio_feedback"` // "correct" or "wrong"
}

// Pose is one reference pose within an asana, as listed by the service.
type Pose struct {
	PoseID     int    `json:"pose_id"`
	PoseName   string `json:"pose_name"`
	PoseNumber int    `json:"pose_number"`
	ImageURL   string `json:"image_url"`
}

// Tolerance bounds accepted by the service, in percent.
const (
	MinTolerance = 5
	MaxTolerance = 50
)

// SessionParameters are the user-tunable inputs to a comparison cycle.
// The engine captures them by value at cycle start; changing them never
// affects a cycle already in flight.
type SessionParameters struct {
	AsanaName           string
	ReferencePoseNumber int
	Tolerance           float64
}

// Validate checks the parameters against the service's accepted ranges.
func (p SessionParameters) Validate() error {
	if p.AsanaName == "" {
		return fmt.Errorf("poseapi: asana name required")
	}
	if p.ReferencePoseNumber < 1 {
		return fmt.Errorf("poseapi: reference pose number must be >= 1, got %d", p.ReferencePoseNumber)
	}
	if p.Tolerance < MinTolerance || p.Tolerance > MaxTolerance {
		return fmt.Errorf("poseapi: tolerance must be in [%d,%d], got %g", MinTolerance, MaxTolerance, p.Tolerance)
	}
	return nil
}
