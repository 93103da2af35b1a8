package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/teamflow-app/teamflow/internal/constants"
	"github.com/teamflow-app/teamflow/internal/dto"
)

func TestAPIRequiresAuthentication(t *testing.T) {
	env := setupTestEnv(t)
	tc := newClient(t, env)

	for _, path := range []string{
		"/api/users/",
		"/api/projects/",
		"/api/projects/user/",
		"/api/projects/1/",
		"/api/project/1/users/",
	} {
		w := tc.do(http.MethodGet, path, nil)
		require.Equal(t, http.StatusUnauthorized, w.Code, "path %s", path)

		var body struct {
			Code string `json:"code"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Equal(t, "UNAUTHORIZED", body.Code)
	}
}

func TestAPIListUsers(t *testing.T) {
	env := setupTestEnv(t)
	registerUser(t, env, "alice", "alice@example.com", "supersecret")
	registerUser(t, env, "bob", "bob@example.com", "supersecret")

	tc := newClient(t, env)
	login(t, tc, "alice@example.com", "supersecret")

	w := tc.do(http.MethodGet, "/api/users/", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var users []dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	require.Len(t, users, 2)
	require.Equal(t, "alice@example.com", users[0].Email)
	require.Equal(t, "alice", users[0].Username)
}

func TestAPIProjects(t *testing.T) {
	env := setupTestEnv(t)
	alice := registerUser(t, env, "alice", "alice@example.com", "supersecret")
	bob := registerUser(t, env, "bob", "bob@example.com", "supersecret")
	registerUser(t, env, "carol", "carol@example.com", "supersecret")

	p1 := createProject(t, env, alice, "Website", 0, 10)
	addMember(t, env, p1, alice, bob)
	p2 := createProject(t, env, bob, "Backend", 0, 20)

	tc := newClient(t, env)
	login(t, tc, "bob@example.com", "supersecret")

	t.Run("list all", func(t *testing.T) {
		w := tc.do(http.MethodGet, "/api/projects/", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var projects []dto.ProjectDTO
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &projects))
		require.Len(t, projects, 2)
	})

	t.Run("single project", func(t *testing.T) {
		w := tc.do(http.MethodGet, fmt.Sprintf("/api/projects/%d/", p1.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var project dto.ProjectDTO
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &project))
		require.Equal(t, "Website", project.Name)
		require.Equal(t, alice.ID, project.CreatedBy)
		require.ElementsMatch(t, []uint64{alice.ID, bob.ID}, project.Members)
		require.Equal(t, p1.StartDate.Format(constants.DateLayout), project.StartDate)
		require.Equal(t, p1.DueDate.Format(constants.DateLayout), project.DueDate)
	})

	t.Run("single project not found", func(t *testing.T) {
		w := tc.do(http.MethodGet, "/api/projects/9999/", nil)
		require.Equal(t, http.StatusNotFound, w.Code)

		var body struct {
			Code string `json:"code"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Equal(t, "NOT_FOUND", body.Code)
	})

	t.Run("caller's projects are distinct", func(t *testing.T) {
		w := tc.do(http.MethodGet, "/api/projects/user/", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var projects []dto.ProjectDTO
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &projects))
		require.Len(t, projects, 2, "bob is a member of p1 and creator+member of p2")

		ids := []uint64{projects[0].ID, projects[1].ID}
		require.ElementsMatch(t, []uint64{p1.ID, p2.ID}, ids)
	})

	t.Run("no projects for uninvolved user", func(t *testing.T) {
		carolClient := newClient(t, env)
		login(t, carolClient, "carol@example.com", "supersecret")

		w := carolClient.do(http.MethodGet, "/api/projects/user/", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var projects []dto.ProjectDTO
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &projects))
		require.Empty(t, projects)
	})

	t.Run("project members", func(t *testing.T) {
		w := tc.do(http.MethodGet, fmt.Sprintf("/api/project/%d/users/", p1.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var members []dto.UserDTO
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &members))
		require.Len(t, members, 2)
	})

	t.Run("members of unknown project is an empty list", func(t *testing.T) {
		w := tc.do(http.MethodGet, "/api/project/9999/users/", nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, "[]", w.Body.String())
	})
}
