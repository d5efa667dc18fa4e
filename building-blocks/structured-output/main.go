package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/plai/internal/groq"
	"github.com/baalimago/plai/internal/models"
	"github.com/baalimago/plai/internal/utils"
)

const defaultRecipe = "chicken parmesan"

type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	// Some ingredients have no sensible unit ('2 eggs'), so allow null
	QuantityUnit *string `json:"quantity_unit"`
}

type Recipe struct {
	RecipeName  string       `json:"recipe_name"`
	Ingredients []Ingredient `json:"ingredients"`
	Directions  []string     `json:"directions"`
}

// recipeSchema mirrors the Recipe struct. It's declared by hand and pasted
// into the system prompt since json mode only guarantees valid json, not
// any particular shape
var recipeSchema = models.InputSchema{
	Type:     "object",
	Required: []string{"recipe_name", "ingredients", "directions"},
	Properties: map[string]models.ParameterObject{
		"recipe_name": {
			Type:        "string",
			Description: "Name of the recipe",
		},
		"ingredients": {
			Type: "array",
			Items: &models.ParameterObject{
				Type:     "object",
				Required: []string{"name", "quantity"},
				Properties: map[string]models.ParameterObject{
					"name":     {Type: "string"},
					"quantity": {Type: "string"},
					"quantity_unit": {
						Type:        "string",
						Description: "Unit of the quantity, e.g. 'cups'. Null when unitless.",
					},
				},
			},
		},
		"directions": {
			Type:  "array",
			Items: &models.ParameterObject{Type: "string"},
		},
	},
}

func main() {
	ancli.SetupSlog()
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	utils.LoadDotEnv()
	recipeName := defaultRecipe
	if len(args) > 0 {
		recipeName = strings.Join(args, " ")
	}

	completer := groq.Completer{
		Model:       "deepseek-r1-distill-llama-70b",
		Temperature: misc.Pointer(0.6),
	}
	if err := completer.Setup(); err != nil {
		ancli.PrintErr(fmt.Sprintf("failed to setup completer: %v\n", err))
		return 1
	}

	recipe, err := getRecipe(context.Background(), &completer, recipeName)
	if err != nil {
		ancli.PrintErr(fmt.Sprintf("failed to get recipe: %v\n", err))
		return 1
	}
	printRecipe(recipe)
	return 0
}

func getRecipe(ctx context.Context, completer *groq.Completer, recipeName string) (Recipe, error) {
	schema, err := json.Marshal(recipeSchema)
	if err != nil {
		return Recipe{}, fmt.Errorf("failed to encode recipe schema: %w", err)
	}
	chat := models.Chat{
		Messages: []models.Message{
			{
				Role:    "system",
				Content: fmt.Sprintf("You are a recipe generator that outputs recipes in JSON format.\n The JSON must adhere to the schema %v", string(schema)),
			},
			{
				Role:    "user",
				Content: fmt.Sprintf("Generate a recipe for %v.", recipeName),
			},
		},
	}
	var recipe Recipe
	if err := completer.CompleteJSON(ctx, chat, &recipe); err != nil {
		return Recipe{}, fmt.Errorf("failed to complete chat: %w", err)
	}
	if recipe.RecipeName == "" || len(recipe.Ingredients) == 0 || len(recipe.Directions) == 0 {
		return Recipe{}, fmt.Errorf("model returned an incomplete recipe: %+v", recipe)
	}
	return recipe, nil
}

func printRecipe(recipe Recipe) {
	fmt.Printf("Recipe for %v:\n", recipe.RecipeName)
	fmt.Println()
	fmt.Println("Ingredients:")
	for _, ingredient := range recipe.Ingredients {
		line := fmt.Sprintf("%v: %v", ingredient.Name, ingredient.Quantity)
		if ingredient.QuantityUnit != nil {
			line = fmt.Sprintf("%v %v", line, *ingredient.QuantityUnit)
		}
		fmt.Println(line)
	}
	fmt.Println()
	fmt.Println("Directions:")
	for i, direction := range recipe.Directions {
		fmt.Printf("%v. %v\n", i+1, direction)
	}
}
