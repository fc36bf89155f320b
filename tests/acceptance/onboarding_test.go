package acceptance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/techtoearth/onboarding-service/internal/dto"
)

func (s *Suite) wizardRequest(method, path, token string, payload interface{}) (*http.Response, dto.WizardStateResponse) {
	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		s.Require().NoError(err)
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, s.BaseURL+"/api/v1/onboarding"+path, body)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)

	var state dto.WizardStateResponse
	_ = json.NewDecoder(resp.Body).Decode(&state)
	resp.Body.Close()

	return resp, state
}

func (s *Suite) TestOnboarding_RequiresAuth() {
	resp, err := http.Get(s.BaseURL + "/api/v1/onboarding/state")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestOnboarding_EmailUserFullRun() {
	_, authResp := s.register("wizard@example.com", "Password123", "")
	token := authResp.AccessToken

	resp, state := s.wizardRequest("GET", "/state", token, nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(1, state.Step)
	s.False(state.BackAllowed)
	s.False(state.Completed)
	s.NotEmpty(state.InterestCatalog)

	resp, state = s.wizardRequest("POST", "/basics", token, dto.WizardBasicsRequest{
		FullName:    "Jane Doe",
		Location:    "Lisbon",
		CurrentRole: "Data analyst",
	})
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(2, state.Step)
	s.True(state.BackAllowed)
	s.Equal("Jane Doe", state.FullName)

	resp, state = s.wizardRequest("POST", "/interests", token, dto.WizardInterestsRequest{
		CareerInterests: []string{"farming", "agritech"},
	})
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(3, state.Step)

	resp, state = s.wizardRequest("POST", "/background", token, dto.WizardBackgroundRequest{
		ExperienceLevel: "beginner",
		Motivation:      "career change",
	})
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(3, state.Step)

	resp, state = s.wizardRequest("POST", "/complete", token, nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.True(state.Completed)
	s.Equal(4, state.Step)
	s.Equal("/dashboard", state.Destination)

	// The durable profile carries the answers.
	req, _ := http.NewRequest("GET", s.BaseURL+"/api/v1/auth/me", nil)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	meResp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer meResp.Body.Close()

	var profile dto.ProfileResponse
	s.Require().NoError(json.NewDecoder(meResp.Body).Decode(&profile))
	s.Equal("Jane Doe", profile.FullName)
	s.Equal([]string{"farming", "agritech"}, profile.CareerInterests)
	s.Equal("career change", profile.Motivation)
	s.True(profile.ProfileCompleted)

	// Subsequent sign-ins route straight to the main area.
	loginReq := dto.LoginRequest{Email: "wizard@example.com", Password: "Password123"}
	body, _ := json.Marshal(loginReq)
	loginResp, err := http.Post(s.BaseURL+"/api/v1/auth/login", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer loginResp.Body.Close()

	var loginAuth dto.AuthResponse
	s.Require().NoError(json.NewDecoder(loginResp.Body).Decode(&loginAuth))
	s.Equal("/dashboard", loginAuth.Destination)
}

func (s *Suite) TestOnboarding_ValidationErrors() {
	_, authResp := s.register("validation@example.com", "Password123", "")
	token := authResp.AccessToken

	resp, _ := s.wizardRequest("POST", "/basics", token, map[string]string{"full_name": ""})
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	// Advance legitimately, then submit an off-catalog tag.
	resp, _ = s.wizardRequest("POST", "/basics", token, dto.WizardBasicsRequest{FullName: "Jane Doe"})
	s.Equal(http.StatusOK, resp.StatusCode)

	resp, _ = s.wizardRequest("POST", "/interests", token, dto.WizardInterestsRequest{
		CareerInterests: []string{"blockchain"},
	})
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	resp, _ = s.wizardRequest("POST", "/background", token, map[string]string{"bio": "hello"})
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	// Completing without the background step is rejected.
	resp, _ = s.wizardRequest("POST", "/complete", token, nil)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestOnboarding_StateResumesAfterNewSession() {
	_, authResp := s.register("resume@example.com", "Password123", "")

	resp, state := s.wizardRequest("POST", "/basics", authResp.AccessToken, dto.WizardBasicsRequest{FullName: "Jane Doe"})
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(2, state.Step)

	// A fresh login resumes the wizard at the same step with answers intact.
	loginReq := dto.LoginRequest{Email: "resume@example.com", Password: "Password123"}
	body, _ := json.Marshal(loginReq)
	loginResp, err := http.Post(s.BaseURL+"/api/v1/auth/login", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	var loginAuth dto.AuthResponse
	s.Require().NoError(json.NewDecoder(loginResp.Body).Decode(&loginAuth))
	loginResp.Body.Close()

	resp, state = s.wizardRequest("GET", "/state", loginAuth.AccessToken, nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(2, state.Step)
	s.Equal("Jane Doe", state.FullName)
}
