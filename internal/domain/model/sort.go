package model

import (
	"cmp"
	"slices"
)

// byName — порядок по имени (побайтовое сравнение, с учётом регистра),
// при равных именах — по ID.
func byName(nameA, idA, nameB, idB string) int {
	if c := cmp.Compare(nameA, nameB); c != 0 {
		return c
	}
	return cmp.Compare(idA, idB)
}

// SortProfessors сортирует преподавателей по имени на месте.
func SortProfessors(items []Professor) {
	slices.SortFunc(items, func(a, b Professor) int {
		return byName(a.Name, a.ID, b.Name, b.ID)
	})
}

// SortDepartments сортирует кафедры по имени на месте.
func SortDepartments(items []Department) {
	slices.SortFunc(items, func(a, b Department) int {
		return byName(a.Name, a.ID, b.Name, b.ID)
	})
}

// DepartmentIndex строит отображение ID кафедры → кафедра
// для вывода кафедры в списке преподавателей.
func DepartmentIndex(items []Department) map[string]Department {
	idx := make(map[string]Department, len(items))
	for _, d := range items {
		idx[d.ID] = d
	}
	return idx
}
