package gateway

import (
	"context"
	"fmt"
	"net/url"

	"github.com/reteach/reteach-cli/internal/diagnostic"
)

func (c *Client) teacherPath(suffix string) (string, error) {
	if c.teacherEmail == "" {
		return "", fmt.Errorf("teacher email is not configured")
	}
	return "/api/teachers/" + url.PathEscape(c.teacherEmail) + suffix, nil
}

// OnboardingStatus reports whether the teacher has completed onboarding
// and the stored course name. This is a secondary fetch: callers treat a
// failure as "not onboarded" and continue.
func (c *Client) OnboardingStatus(ctx context.Context) (completed bool, courseName string, err error) {
	path, err := c.teacherPath("/onboarding-status")
	if err != nil {
		return false, "", err
	}

	var resp struct {
		Completed  bool   `json:"onboarding_completed"`
		CourseName string `json:"course_name"`
	}
	if err := c.doJSON(ctx, "GET", path, nil, nil, &resp); err != nil {
		return false, "", err
	}
	return resp.Completed, resp.CourseName, nil
}

// CompleteOnboarding marks the teacher's onboarding as finished.
func (c *Client) CompleteOnboarding(ctx context.Context) error {
	path, err := c.teacherPath("/complete-onboarding")
	if err != nil {
		return err
	}
	return c.doJSON(ctx, "POST", path, nil, nil, nil)
}

// UpdateCourseName stores the teacher's course name.
func (c *Client) UpdateCourseName(ctx context.Context, courseName string) error {
	path, err := c.teacherPath("/course-name")
	if err != nil {
		return err
	}
	req := map[string]string{"course_name": courseName}
	return c.doJSON(ctx, "PUT", path, nil, req, nil)
}

// wireStudent is one roster entry in the students listing.
type wireStudent struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	FormsCompleted int    `json:"forms_completed"`
	LastActivity   string `json:"last_activity"`
}

// ListStudents fetches the teacher's student roster.
func (c *Client) ListStudents(ctx context.Context) ([]diagnostic.Student, error) {
	path, err := c.teacherPath("/students")
	if err != nil {
		return nil, err
	}

	var resp []wireStudent
	if err := c.doJSON(ctx, "GET", path, nil, nil, &resp); err != nil {
		return nil, err
	}

	students := make([]diagnostic.Student, 0, len(resp))
	for _, w := range resp {
		students = append(students, diagnostic.Student{
			ID:             w.ID,
			Name:           w.Name,
			Email:          w.Email,
			FormsCompleted: w.FormsCompleted,
			LastActivity:   w.LastActivity,
		})
	}
	return students, nil
}

// RemoveStudent removes a student from the teacher's class.
func (c *Client) RemoveStudent(ctx context.Context, studentID string) error {
	path, err := c.teacherPath("/students/" + url.PathEscape(studentID))
	if err != nil {
		return err
	}
	return c.doJSON(ctx, "DELETE", path, nil, nil, nil)
}
