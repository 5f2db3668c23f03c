package handler

import (
	"net/http"

	"github.com/DioGolang/GoUniversity/internal/application/port/outbound"
	"github.com/DioGolang/GoUniversity/internal/application/usecase/academic"
	"github.com/DioGolang/GoUniversity/internal/domain/entity"
)

type Student struct {
	UseCase academic.UseCase
}

func NewStudentHandler(uc academic.UseCase) *Student {
	return &Student{UseCase: uc}
}

func (h *Student) List(w http.ResponseWriter, r *http.Request) {
	students, err := h.UseCase.ListStudents(r.Context())
	writeRead(w, students, err)
}

func (h *Student) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, outbound.ErrNotFound.Error())
		return
	}
	student, err := h.UseCase.GetStudent(r.Context(), id)
	writeRead(w, student, err)
}

func (h *Student) Create(w http.ResponseWriter, r *http.Request) {
	var student entity.Student
	if !decode(w, r, &student) {
		return
	}
	writeResult(w, h.UseCase.CreateStudent(r.Context(), &student), http.StatusCreated, &student)
}

func (h *Student) Update(w http.ResponseWriter, r *http.Request) {
	var student entity.Student
	if !decode(w, r, &student) || !bindID(w, r, &student.StudentID) {
		return
	}
	writeResult(w, h.UseCase.UpdateStudent(r.Context(), &student), http.StatusOK, &student)
}

func (h *Student) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, outbound.ErrNotFound.Error())
		return
	}
	writeResult(w, h.UseCase.DeleteStudent(r.Context(), id), http.StatusNoContent, nil)
}
