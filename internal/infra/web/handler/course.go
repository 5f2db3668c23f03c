package handler

import (
	"net/http"

	"github.com/DioGolang/GoUniversity/internal/application/port/outbound"
	"github.com/DioGolang/GoUniversity/internal/application/usecase/academic"
	"github.com/DioGolang/GoUniversity/internal/domain/entity"
)

type Course struct {
	UseCase academic.UseCase
}

func NewCourseHandler(uc academic.UseCase) *Course {
	return &Course{UseCase: uc}
}

func (h *Course) List(w http.ResponseWriter, r *http.Request) {
	courses, err := h.UseCase.ListCourses(r.Context())
	writeRead(w, courses, err)
}

func (h *Course) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, outbound.ErrNotFound.Error())
		return
	}
	course, err := h.UseCase.GetCourse(r.Context(), id)
	writeRead(w, course, err)
}

func (h *Course) Groups(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, outbound.ErrNotFound.Error())
		return
	}
	groups, err := h.UseCase.ListCourseGroups(r.Context(), id)
	writeRead(w, groups, err)
}

func (h *Course) Create(w http.ResponseWriter, r *http.Request) {
	var course entity.Course
	if !decode(w, r, &course) {
		return
	}
	writeResult(w, h.UseCase.CreateCourse(r.Context(), &course), http.StatusCreated, &course)
}

func (h *Course) Update(w http.ResponseWriter, r *http.Request) {
	var course entity.Course
	if !decode(w, r, &course) || !bindID(w, r, &course.CourseID) {
		return
	}
	writeResult(w, h.UseCase.UpdateCourse(r.Context(), &course), http.StatusOK, &course)
}

func (h *Course) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, outbound.ErrNotFound.Error())
		return
	}
	writeResult(w, h.UseCase.DeleteCourse(r.Context(), id), http.StatusNoContent, nil)
}
