// Package routepath names every client-visible path.
package routepath

const (
	Root              = "/"
	Health            = "/health"
	Login             = "/login"
	SignIn            = "/auth/signin"
	AuthCallback      = "/auth/callback"
	Logout            = "/auth/logout"
	Onboarding        = "/onboarding"
	OnboardingEdit    = Onboarding + "?edit=1"
	Home              = "/home"
	Dashboard         = "/dashboard"
	Learn             = "/learn"
	LearnSubject      = "/learn/{subject}"
	LearnSubjectTopic = "/learn/{subject}/{topic}"
)

// Subject returns the listing path for one subject slug.
func Subject(slug string) string {
	return Learn + "/" + slug
}

// Topic returns the path for one topic within a subject.
func Topic(subject, topic string) string {
	return Learn + "/" + subject + "/" + topic
}
