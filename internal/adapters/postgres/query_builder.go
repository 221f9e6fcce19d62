package postgres

import (
	"fmt"
	"marketplace-service/internal/core/domain"
	"strings"
)

type queryBuilder struct {
	conditions []string
	args       []interface{}
	argId      int
}

func newQueryBuilder() *queryBuilder {
	return &queryBuilder{
		argId:      1,
		conditions: make([]string, 0),
		args:       make([]interface{}, 0),
	}
}

// addCondition добавляет условие вида "<поле> <оператор> $N" и связанный аргумент
func (qb *queryBuilder) addCondition(condition string, fieldName string, arg interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf(condition, fieldName, qb.argId))
	qb.args = append(qb.args, arg)
	qb.argId++
}

func (qb *queryBuilder) AddFloatFilter(fieldName string, min *float64, max *float64) {
	if min != nil {
		qb.addCondition("%s >= $%d", fieldName, *min)
	}
	if max != nil {
		qb.addCondition("%s <= $%d", fieldName, *max)
	}
}

func (qb *queryBuilder) AddIntFilter(fieldName string, min *int, max *int) {
	if min != nil {
		qb.addCondition("%s >= $%d", fieldName, *min)
	}
	if max != nil {
		qb.addCondition("%s <= $%d", fieldName, *max)
	}
}

func (qb *queryBuilder) AddEquals(fieldName string, value string) {
	if value != "" {
		qb.addCondition("%s = $%d", fieldName, value)
	}
}

// AddContains - подстрока без учета регистра. Спецсимволы LIKE в значении экранируются.
func (qb *queryBuilder) AddContains(fieldName string, value string) {
	if value != "" {
		qb.addCondition("%s ILIKE $%d", fieldName, "%"+escapeLike(value)+"%")
	}
}

// AddContainsAny - подстрока хотя бы в одном из полей; все поля используют один и тот же аргумент.
func (qb *queryBuilder) AddContainsAny(fieldNames []string, value string) {
	if value == "" || len(fieldNames) == 0 {
		return
	}
	parts := make([]string, len(fieldNames))
	for i, f := range fieldNames {
		parts[i] = fmt.Sprintf("%s ILIKE $%d", f, qb.argId)
	}
	qb.conditions = append(qb.conditions, "("+strings.Join(parts, " OR ")+")")
	qb.args = append(qb.args, "%"+escapeLike(value)+"%")
	qb.argId++
}

func (qb *queryBuilder) AddPrefix(fieldName string, value string) {
	if value != "" {
		qb.addCondition("%s LIKE $%d", fieldName, escapeLike(value)+"%")
	}
}

// nextArg регистрирует аргумент вне WHERE (например, LIMIT) и возвращает его плейсхолдер
func (qb *queryBuilder) nextArg(arg interface{}) string {
	placeholder := fmt.Sprintf("$%d", qb.argId)
	qb.args = append(qb.args, arg)
	qb.argId++
	return placeholder
}

// build создает WHERE и список аргументов
func (qb *queryBuilder) build() (string, []interface{}) {
	whereClause := ""
	if len(qb.conditions) > 0 {
		whereClause = "WHERE " + strings.Join(qb.conditions, " AND ")
	}
	return whereClause, qb.args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// поля, по которым работает полнотекстовый q
var searchableColumns = []string{"p.title", "p.description", "p.address", "p.city"}

// applyFilters разбирает фильтр в набор параметризованных условий
func applyFilters(filter domain.SearchFilter) *queryBuilder {
	qb := newQueryBuilder()

	// Точные совпадения
	qb.AddEquals("p.status", filter.Status)
	qb.AddEquals("p.listing_type", filter.ListingType)
	qb.AddEquals("p.property_type", filter.PropertyType)
	qb.AddEquals("p.state", filter.State)
	if filter.SellerID != nil {
		qb.addCondition("%s = $%d", "p.seller_id", *filter.SellerID)
	}

	// Подстроки
	qb.AddContains("p.city", filter.City)
	qb.AddContainsAny(searchableColumns, filter.Query)
	qb.AddPrefix("p.geohash", filter.Geohash)

	// Диапазоны (границы включительно)
	qb.AddFloatFilter("p.price", filter.MinPrice, filter.MaxPrice)
	qb.AddIntFilter("p.bedrooms", filter.MinBedrooms, nil)
	qb.AddIntFilter("p.bathrooms", filter.MinBathrooms, nil)
	qb.AddFloatFilter("p.area_sqft", filter.MinArea, filter.MaxArea)

	return qb
}

// updateBuilder собирает SET для частичного обновления по белому списку колонок
type updateBuilder struct {
	sets  []string
	args  []interface{}
	argId int
}

func (ub *updateBuilder) set(column string, value interface{}) {
	ub.sets = append(ub.sets, fmt.Sprintf("%s = $%d", column, ub.argId))
	ub.args = append(ub.args, value)
	ub.argId++
}

func buildUpdate(changes domain.PropertyChanges) (string, []interface{}, int) {
	ub := &updateBuilder{argId: 1}

	if changes.Title != nil {
		ub.set("title", *changes.Title)
	}
	if changes.Description != nil {
		ub.set("description", *changes.Description)
	}
	if changes.PropertyType != nil {
		ub.set("property_type", *changes.PropertyType)
	}
	if changes.ListingType != nil {
		ub.set("listing_type", *changes.ListingType)
	}
	if changes.Price != nil {
		ub.set("price", *changes.Price)
	}
	if changes.Address != nil {
		ub.set("address", *changes.Address)
	}
	if changes.City != nil {
		ub.set("city", *changes.City)
	}
	if changes.State != nil {
		ub.set("state", *changes.State)
	}
	if changes.ZipCode != nil {
		ub.set("zip_code", *changes.ZipCode)
	}
	if changes.Bedrooms != nil {
		ub.set("bedrooms", *changes.Bedrooms)
	}
	if changes.Bathrooms != nil {
		ub.set("bathrooms", *changes.Bathrooms)
	}
	if changes.AreaSqft != nil {
		ub.set("area_sqft", *changes.AreaSqft)
	}
	if changes.YearBuilt != nil {
		ub.set("year_built", *changes.YearBuilt)
	}
	if changes.Parking != nil {
		ub.set("parking", *changes.Parking)
	}
	if changes.Images != nil {
		ub.set("images", domain.EncodeImageRefs(*changes.Images))
	}
	if changes.Latitude != nil {
		ub.set("latitude", *changes.Latitude)
	}
	if changes.Longitude != nil {
		ub.set("longitude", *changes.Longitude)
	}
	if changes.Geohash != nil {
		ub.set("geohash", *changes.Geohash)
	}
	if changes.Status != nil {
		ub.set("status", *changes.Status)
	}

	return strings.Join(ub.sets, ", "), ub.args, ub.argId
}
