package resource

import (
	"github.com/BruksfildServices01/certhub/internal/httperr"
)

// ===============================
// Resource Types
// ===============================

type Type string

const (
	TypeCertification        Type = "Certification"
	TypeCompany              Type = "Company"
	TypeCompanyCertification Type = "CompanyCertification"
	TypeCompanyTraining      Type = "CompanyTraining"
	TypeField                Type = "Field"
	TypeTraining             Type = "Training"
	TypePage                 Type = "Page"
)

var slugs = map[Type]string{
	TypeCertification:        "certifications",
	TypeCompany:              "companies",
	TypeCompanyCertification: "company-certifications",
	TypeCompanyTraining:      "company-trainings",
	TypeField:                "fields",
	TypeTraining:             "trainings",
	TypePage:                 "pages",
}

// Types returns every supported resource type.
func Types() []Type {
	return []Type{
		TypeCertification,
		TypeCompany,
		TypeCompanyCertification,
		TypeCompanyTraining,
		TypeField,
		TypeTraining,
		TypePage,
	}
}

func (t Type) Valid() bool {
	_, ok := slugs[t]
	return ok
}

// Slug is the plural path segment used by the per-resource routes.
func (t Type) Slug() string {
	return slugs[t]
}

func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.Valid() {
		return "", httperr.ErrBusinessf(httperr.CodeUnknownResourceType, "unknown resource type %q", s)
	}
	return t, nil
}

// TypeFromSlug accepts either the route slug ("company-trainings") or the type name.
func TypeFromSlug(s string) (Type, error) {
	for t, slug := range slugs {
		if slug == s {
			return t, nil
		}
	}
	return ParseType(s)
}

// ===============================
// Operations
// ===============================

type Operation string

const (
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

func ParseOperation(s string) (Operation, error) {
	switch op := Operation(s); op {
	case OpCreate, OpUpdate, OpDelete:
		return op, nil
	default:
		return "", httperr.ErrBusinessf(httperr.CodeValidation, "actionType must be one of create, update, delete; got %q", s)
	}
}
