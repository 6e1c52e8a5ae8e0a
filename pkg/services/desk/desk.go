// Package desk maps an enquiry's country to the market desk that covers it.
package desk

import (
	"strings"

	"golang.org/x/text/cases"
)

const (
	Brazil    = "Brazil Desk"
	Mexico    = "Mexico Desk"
	Spain     = "Spain Desk"
	UK        = "UK Desk"
	Australia = "Australia Desk"
	India     = "India Desk"
	USA       = "USA Desk"
	Germany   = "German Desk"
	MidEast   = "Middle East Desk"
	Latam     = "Latam Desk"
	Euro      = "Euro Desk"
	China     = "China Desk"
	Others    = "Others"
)

type rule struct {
	desk      string
	countries []string
}

// Single-country rules come before the regional sets; the first matching rule wins.
var rules = []rule{
	{Brazil, []string{"brazil"}},
	{Mexico, []string{"mexico"}},
	{Spain, []string{"spain"}},
	{UK, []string{"united kingdom", "uk", "great britain"}},
	{Australia, []string{"australia"}},
	{India, []string{"india"}},
	{USA, []string{"united states", "united states of america", "usa", "us"}},
	{Germany, []string{"germany"}},
	{MidEast, []string{
		"united arab emirates", "uae", "saudi arabia", "qatar", "kuwait", "oman", "bahrain",
		"jordan", "lebanon", "israel", "iraq", "iran",
	}},
	{Latam, []string{
		"argentina", "colombia", "peru", "chile", "ecuador", "uruguay", "paraguay", "bolivia",
		"costa rica", "panama", "venezuela", "guatemala", "honduras", "el salvador",
		"dominican republic", "cuba", "jamaica", "trinidad and tobago", "bahamas", "barbados",
		"haiti", "nicaragua", "puerto rico",
	}},
	{Euro, []string{
		"france", "italy", "netherlands", "belgium", "sweden", "norway", "denmark", "finland",
		"switzerland", "austria", "poland", "czech republic", "hungary", "ireland", "portugal",
		"greece", "slovakia", "slovenia", "romania", "bulgaria", "croatia", "estonia", "latvia",
		"lithuania", "luxembourg",
	}},
	{China, []string{"china", "hong kong"}},
}

var index = buildIndex()

func buildIndex() map[string]string {
	idx := make(map[string]string)
	for _, r := range rules {
		for _, c := range r.countries {
			if _, taken := idx[c]; !taken {
				idx[c] = r.desk
			}
		}
	}
	return idx
}

// Map returns the desk covering country, or Others when no rule matches.
func Map(country string) string {
	if d, ok := index[Normalize(country)]; ok {
		return d
	}
	return Others
}

// Labels lists every desk Map can produce except Others, in rule order.
func Labels() []string {
	labels := make([]string, 0, len(rules))
	for _, r := range rules {
		labels = append(labels, r.desk)
	}
	return labels
}

// Known reports whether label is a desk block label. Others is not one.
func Known(label string) bool {
	for _, r := range rules {
		if r.desk == label {
			return true
		}
	}
	return false
}

// Normalize trims and case-folds a country name so lookups ignore spacing and case.
func Normalize(country string) string {
	return cases.Fold().String(strings.Join(strings.Fields(country), " "))
}
