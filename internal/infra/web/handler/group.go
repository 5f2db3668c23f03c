package handler

import (
	"net/http"

	"github.com/DioGolang/GoUniversity/internal/application/port/outbound"
	"github.com/DioGolang/GoUniversity/internal/application/usecase/academic"
	"github.com/DioGolang/GoUniversity/internal/domain/entity"
)

type Group struct {
	UseCase academic.UseCase
}

func NewGroupHandler(uc academic.UseCase) *Group {
	return &Group{UseCase: uc}
}

func (h *Group) List(w http.ResponseWriter, r *http.Request) {
	groups, err := h.UseCase.ListGroups(r.Context())
	writeRead(w, groups, err)
}

func (h *Group) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, outbound.ErrNotFound.Error())
		return
	}
	group, err := h.UseCase.GetGroup(r.Context(), id)
	writeRead(w, group, err)
}

func (h *Group) Students(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, outbound.ErrNotFound.Error())
		return
	}
	students, err := h.UseCase.ListGroupStudents(r.Context(), id)
	writeRead(w, students, err)
}

func (h *Group) Create(w http.ResponseWriter, r *http.Request) {
	var group entity.Group
	if !decode(w, r, &group) {
		return
	}
	writeResult(w, h.UseCase.CreateGroup(r.Context(), &group), http.StatusCreated, &group)
}

func (h *Group) Update(w http.ResponseWriter, r *http.Request) {
	var group entity.Group
	if !decode(w, r, &group) || !bindID(w, r, &group.GroupID) {
		return
	}
	writeResult(w, h.UseCase.UpdateGroup(r.Context(), &group), http.StatusOK, &group)
}

func (h *Group) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, outbound.ErrNotFound.Error())
		return
	}
	writeResult(w, h.UseCase.DeleteGroup(r.Context(), id), http.StatusNoContent, nil)
}
