package acceptance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/techtoearth/onboarding-service/internal/dto"
)

func (s *Suite) register(email, password, fullName string) (*http.Response, dto.AuthResponse) {
	reqBody := dto.RegisterRequest{
		Email:    email,
		Password: password,
		FullName: fullName,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(
		s.BaseURL+"/api/v1/auth/register",
		"application/json",
		bytes.NewBuffer(body),
	)
	s.Require().NoError(err)

	var authResp dto.AuthResponse
	_ = json.NewDecoder(resp.Body).Decode(&authResp)
	resp.Body.Close()

	return resp, authResp
}

func (s *Suite) TestRegister_WithoutNameRoutesToOnboarding() {
	resp, authResp := s.register("test@example.com", "Password123", "")

	s.Equal(http.StatusCreated, resp.StatusCode)
	s.NotEmpty(authResp.AccessToken)
	s.Equal("Bearer", authResp.TokenType)
	s.NotZero(authResp.ExpiresIn)
	s.Equal("test@example.com", authResp.User.Email)
	s.NotEmpty(authResp.User.ID)
	s.Equal("/onboarding", authResp.Destination)

	s.NotEmpty(resp.Cookies(), "Should have refresh token cookie")
}

func (s *Suite) TestRegister_WithNameStillRoutesToOnboarding() {
	// A name alone does not complete the profile; the wizard is still required.
	resp, authResp := s.register("named@example.com", "Password123", "Jane Doe")

	s.Equal(http.StatusCreated, resp.StatusCode)
	s.Equal("/onboarding", authResp.Destination)
}

func (s *Suite) TestRegister_DuplicateEmail() {
	resp1, _ := s.register("duplicate@example.com", "Password123", "")
	s.Equal(http.StatusCreated, resp1.StatusCode)

	reqBody := dto.RegisterRequest{Email: "duplicate@example.com", Password: "Password123"}
	body, _ := json.Marshal(reqBody)
	resp2, err := http.Post(s.BaseURL+"/api/v1/auth/register", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer resp2.Body.Close()

	s.Equal(http.StatusConflict, resp2.StatusCode)

	var errResp dto.ErrorResponse
	_ = json.NewDecoder(resp2.Body).Decode(&errResp)
	s.Equal("Conflict", errResp.Error)
}

func (s *Suite) TestRegister_InvalidEmail() {
	reqBody := dto.RegisterRequest{Email: "invalid-email", Password: "Password123"}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(s.BaseURL+"/api/v1/auth/register", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestRegister_WeakPassword() {
	reqBody := dto.RegisterRequest{Email: "weak@example.com", Password: "password"}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(s.BaseURL+"/api/v1/auth/register", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestLogin_Success() {
	resp, _ := s.register("login@example.com", "Password123", "")
	s.Equal(http.StatusCreated, resp.StatusCode, "Registration should succeed")

	loginReq := dto.LoginRequest{Email: "login@example.com", Password: "Password123"}
	body, _ := json.Marshal(loginReq)

	loginResp, err := http.Post(s.BaseURL+"/api/v1/auth/login", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer loginResp.Body.Close()

	s.Equal(http.StatusOK, loginResp.StatusCode)

	var authResp dto.AuthResponse
	s.Require().NoError(json.NewDecoder(loginResp.Body).Decode(&authResp))

	s.NotEmpty(authResp.AccessToken)
	s.Equal("Bearer", authResp.TokenType)
	s.Equal("login@example.com", authResp.User.Email)
	s.Equal("/onboarding", authResp.Destination, "incomplete profile must route to the wizard")

	s.NotEmpty(loginResp.Cookies(), "Should have refresh token cookie")
}

func (s *Suite) TestLogin_InvalidCredentials() {
	loginReq := dto.LoginRequest{Email: "nonexistent@example.com", Password: "WrongPassword1"}
	body, _ := json.Marshal(loginReq)

	resp, err := http.Post(s.BaseURL+"/api/v1/auth/login", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)

	var errResp dto.ErrorResponse
	_ = json.NewDecoder(resp.Body).Decode(&errResp)
	s.Equal("Unauthorized", errResp.Error)
}

func (s *Suite) TestLogin_WrongPassword() {
	resp, _ := s.register("wrongpass@example.com", "CorrectPassword123", "")
	s.Equal(http.StatusCreated, resp.StatusCode)

	loginReq := dto.LoginRequest{Email: "wrongpass@example.com", Password: "WrongPassword123"}
	body, _ := json.Marshal(loginReq)

	loginResp, err := http.Post(s.BaseURL+"/api/v1/auth/login", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer loginResp.Body.Close()

	s.Equal(http.StatusUnauthorized, loginResp.StatusCode)
}

func (s *Suite) TestGetMe_ReturnsReconciledProfile() {
	_, authResp := s.register("getme@example.com", "Password123", "Jane Doe")

	req, _ := http.NewRequest("GET", s.BaseURL+"/api/v1/auth/me", nil)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", authResp.AccessToken))

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var profile dto.ProfileResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&profile))

	s.Equal("getme@example.com", profile.Email)
	s.Equal("Jane Doe", profile.FullName)
	s.Equal("email", profile.Provider)
	s.False(profile.ProfileCompleted, "email signups never complete without the wizard")
}

func (s *Suite) TestGetMe_Unauthorized() {
	req, _ := http.NewRequest("GET", s.BaseURL+"/api/v1/auth/me", nil)

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestRefresh_RotatesToken() {
	registerResp, _ := s.register("refresh@example.com", "Password123", "")

	var refreshCookie *http.Cookie
	for _, cookie := range registerResp.Cookies() {
		if cookie.Name == "refresh_token" {
			refreshCookie = cookie
		}
	}
	s.Require().NotNil(refreshCookie, "registration must set the refresh cookie")

	req, _ := http.NewRequest("POST", s.BaseURL+"/api/v1/auth/refresh", nil)
	req.AddCookie(refreshCookie)

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var authResp dto.AuthResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&authResp))
	s.NotEmpty(authResp.AccessToken)
	s.Equal("/onboarding", authResp.Destination)

	// The old refresh token is single-use.
	req2, _ := http.NewRequest("POST", s.BaseURL+"/api/v1/auth/refresh", nil)
	req2.AddCookie(refreshCookie)

	resp2, err := http.DefaultClient.Do(req2)
	s.Require().NoError(err)
	defer resp2.Body.Close()

	s.Equal(http.StatusUnauthorized, resp2.StatusCode)
}

func (s *Suite) TestRefresh_MissingCookie() {
	resp, err := http.Post(s.BaseURL+"/api/v1/auth/refresh", "application/json", nil)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestLogout_InvalidatesAccessToken() {
	_, authResp := s.register("logout@example.com", "Password123", "")

	req, _ := http.NewRequest("POST", s.BaseURL+"/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", authResp.AccessToken))

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	meReq, _ := http.NewRequest("GET", s.BaseURL+"/api/v1/auth/me", nil)
	meReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", authResp.AccessToken))

	meResp, err := http.DefaultClient.Do(meReq)
	s.Require().NoError(err)
	defer meResp.Body.Close()

	s.Equal(http.StatusUnauthorized, meResp.StatusCode, "blacklisted token must be rejected")
}
