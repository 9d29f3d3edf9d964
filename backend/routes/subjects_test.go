package routes

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjectsCRUD(t *testing.T) {
	a := newTestApp(t)

	status, list := a.callList(t, fiber.MethodGet, "/subjects/", 0)
	require.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, list)

	physics := a.createSubject(t, "Physics")
	a.createSubject(t, "Art")

	status, _ = a.call(t, fiber.MethodPost, "/subjects/", 0, map[string]string{"name": "Physics"})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, list = a.callList(t, fiber.MethodGet, "/subjects/", 0)
	require.Equal(t, fiber.StatusOK, status)
	require.Len(t, list, 2)
	assert.Equal(t, "Art", list[0]["name"])
	assert.Equal(t, "Physics", list[1]["name"])

	status, body := a.call(t, fiber.MethodPut, "/subjects/1", 0, map[string]string{"name": "Astrophysics"})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(physics), body["id"])
	assert.Equal(t, "Astrophysics", body["name"])

	status, _ = a.call(t, fiber.MethodPut, "/subjects/1", 0, map[string]string{"name": "Art"})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = a.call(t, fiber.MethodPut, "/subjects/99", 0, map[string]string{"name": "History"})
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = a.call(t, fiber.MethodPut, "/subjects/abc", 0, map[string]string{"name": "History"})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, body = a.call(t, fiber.MethodDelete, "/subjects/1", 0, nil)
	assert.Equal(t, fiber.StatusNoContent, status)
	assert.Nil(t, body)

	status, _ = a.call(t, fiber.MethodDelete, "/subjects/1", 0, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestDeleteSubjectInUse(t *testing.T) {
	a := newTestApp(t)
	ann := a.register(t, "ann")
	physics := a.createSubject(t, "Physics")

	status, _ := a.call(t, fiber.MethodPost, "/study", ann, map[string]interface{}{
		"subject_id": physics,
		"duration":   30,
	})
	require.Equal(t, fiber.StatusCreated, status)

	status, body := a.call(t, fiber.MethodDelete, "/subjects/1", 0, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body["message"], "used by study sessions")
}
