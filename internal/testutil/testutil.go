// Package testutil provides testing utilities for stepthrough tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Iron-Ham/stepthrough/internal/walkthrough"
)

// PokemonSource is the card-collection script the built-in lesson walks through.
const PokemonSource = `pikachu = {"name": "Pikachu", "rarity": "Common", "price": 2.50}
charizard = {"name": "Charizard", "rarity": "Ultra Rare", "price": 150.0}
eevee = {"name": "Eevee", "rarity": "Uncommon", "price": 5.0}

collection = []

collection.append(pikachu)
collection.append(charizard)
collection.append(eevee)

for card in collection:
    print(card["name"], "-", card["rarity"], "- $", card["price"])

print("You have", len(collection), "cards in your collection.")`

// PokemonFinalOutput is the full program output of PokemonSource.
const PokemonFinalOutput = `Pikachu - Common - $ 2.5
Charizard - Ultra Rare - $ 150.0
Eevee - Uncommon - $ 5.0
You have 3 cards in your collection.`

// PokemonContent returns the card-collection walkthrough: 11 trace entries,
// 5 plan steps, output offset 6 and no explicit output phases.
func PokemonContent() *walkthrough.Content {
	loopLocals := func(card string) walkthrough.Locals {
		return walkthrough.Locals{
			{Name: "collection", Value: "[…3 cards…]"},
			{Name: "card", Value: card},
		}
	}
	appended := func(list string) walkthrough.Locals {
		return walkthrough.Locals{
			{Name: "collection", Value: list},
			{Name: "pikachu", Value: "{...}"},
			{Name: "charizard", Value: "{...}"},
			{Name: "eevee", Value: "{...}"},
		}
	}

	lines := strings.Split(PokemonFinalOutput, "\n")

	return &walkthrough.Content{
		Title:   "Pokémon card collection",
		Request: "I want to track my Pokémon cards — name, rarity, and price — and then print them out at the end.",
		Source:  strings.Split(PokemonSource, "\n"),
		Plan: walkthrough.NewPlan(
			"Decide how to store each card (we'll use a dictionary with name, rarity, and price).",
			"Make an empty list called collection to hold all the cards.",
			"Add a few Pokémon card dictionaries to the list.",
			"Loop through collection and print each card in a nice sentence.",
			"At the end, print how many cards are in your collection.",
		),
		Trace: []walkthrough.TraceEntry{
			{Line: 1, StepTag: 1, Hint: "You define a dictionary for Pikachu with name, rarity, and price.",
				Locals: walkthrough.Locals{{Name: "pikachu", Value: "{name:'Pikachu', rarity:'Common', price:2.50}"}}},
			{Line: 2, StepTag: 1, Hint: "You define a dictionary for Charizard. Notice it has a much higher price.",
				Locals: walkthrough.Locals{
					{Name: "pikachu", Value: "{...}"},
					{Name: "charizard", Value: "{name:'Charizard', rarity:'Ultra Rare', price:150.0}"},
				}},
			{Line: 3, StepTag: 1, Hint: "You define a dictionary for Eevee, another card in your collection.",
				Locals: walkthrough.Locals{
					{Name: "pikachu", Value: "{...}"},
					{Name: "charizard", Value: "{...}"},
					{Name: "eevee", Value: "{name:'Eevee', rarity:'Uncommon', price:5.0}"},
				}},
			{Line: 5, StepTag: 2, Hint: "You create an empty list called collection. This will hold all of your Pokémon cards.",
				Locals: appended("[]")},
			{Line: 7, StepTag: 3, Hint: "You append Pikachu to collection. Now the list has 1 card.",
				Locals: appended("[pikachu]")},
			{Line: 8, StepTag: 3, Hint: "You append Charizard to collection. Now there are 2 cards.",
				Locals: appended("[pikachu, charizard]")},
			{Line: 9, StepTag: 3, Hint: "You append Eevee to collection. Now the list has all 3 cards.",
				Locals: appended("[pikachu, charizard, eevee]")},
			{Line: 12, StepTag: 4, Hint: "The loop starts. On this iteration, card refers to the Pikachu dictionary.",
				Locals: loopLocals("pikachu {...}")},
			{Line: 12, StepTag: 4, Hint: "Second loop iteration: now card refers to Charizard.",
				Locals: loopLocals("charizard {...}")},
			{Line: 12, StepTag: 4, Hint: "Third loop iteration: now card refers to Eevee.",
				Locals: loopLocals("eevee {...}")},
			{Line: 14, StepTag: 5, Hint: "You print the total number of cards using len(collection).",
				Locals: walkthrough.Locals{{Name: "collection", Value: "[…3 cards…]"}}},
		},
		Outputs: walkthrough.Outputs{
			0: "",
			1: strings.Join(lines[:1], "\n"),
			2: strings.Join(lines[:2], "\n"),
			3: strings.Join(lines[:3], "\n"),
			4: strings.Join(lines[:4], "\n"),
		},
		OutputOffset: 6,
	}
}

// StaircaseContent returns a minimal valid content whose trace has one entry
// per step tag in tags, each on its own source line.
func StaircaseContent(tags ...int) *walkthrough.Content {
	maxTag := 0
	source := make([]string, len(tags))
	trace := make([]walkthrough.TraceEntry, len(tags))
	for i, tag := range tags {
		maxTag = max(maxTag, tag)
		source[i] = "line"
		trace[i] = walkthrough.TraceEntry{Line: i + 1, StepTag: tag}
	}
	plan := make([]string, maxTag)
	for i := range plan {
		plan[i] = "step"
	}
	return &walkthrough.Content{
		Source:  source,
		Plan:    walkthrough.NewPlan(plan...),
		Trace:   trace,
		Outputs: walkthrough.Outputs{0: ""},
	}
}

// WriteFile writes content to name inside dir and returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}
