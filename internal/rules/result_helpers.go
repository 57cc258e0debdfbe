package rules

import "github.com/google/go-github/v81/github"

func RepoFullName(repo *github.Repository) string {
	if repo == nil {
		return ""
	}
	return repo.GetFullName()
}

func NewResult(repo *github.Repository, ruleID string, status Status, message string) Result {
	res := Result{
		Status: status,
		Repo:   RepoFullName(repo),
		RuleID: ruleID,
	}
	if message != "" {
		res.Message = message
	}
	return res
}

func PassResult(repo *github.Repository, ruleID string) Result {
	return NewResult(repo, ruleID, StatusPass, "")
}

func PassResultWithMessage(repo *github.Repository, ruleID string, message string) Result {
	return NewResult(repo, ruleID, StatusPass, message)
}

func FailResult(repo *github.Repository, ruleID string, message string) Result {
	return NewResult(repo, ruleID, StatusFail, message)
}

func ErrorResult(repo *github.Repository, ruleID string, message string) Result {
	return NewResult(repo, ruleID, StatusError, message)
}

// WithEvidence returns a copy of res with key set to value.
func WithEvidence(res Result, key, value string) Result {
	ev := make(map[string]string, len(res.Evidence)+1)
	for k, v := range res.Evidence {
		ev[k] = v
	}
	ev[key] = value
	res.Evidence = ev
	return res
}
