package catalog

import "github.com/okuzmina/bookstand/internal/models"

// seedBooks is the shipped catalog. Quantity is total owned copies.
var seedBooks = []models.Book{
	{
		ID:          1,
		Title:       "Crime and Punishment",
		Author:      "Fyodor Dostoevsky",
		Quantity:    5,
		Rating:      4.8,
		Description: "A destitute former student murders a pawnbroker and is consumed by guilt and paranoia.",
		CoverURL:    "/covers/crime-and-punishment.jpg",
	},
	{
		ID:          2,
		Title:       "War and Peace",
		Author:      "Leo Tolstoy",
		Quantity:    3,
		Rating:      4.7,
		Description: "Five aristocratic families live through the Napoleonic invasion of Russia.",
		CoverURL:    "/covers/war-and-peace.jpg",
	},
	{
		ID:          3,
		Title:       "The Master and Margarita",
		Author:      "Mikhail Bulgakov",
		Quantity:    4,
		Rating:      4.9,
		Description: "The devil arrives in Soviet Moscow accompanied by a talking black cat.",
		CoverURL:    "/covers/master-and-margarita.jpg",
	},
	{
		ID:          4,
		Title:       "Anna Karenina",
		Author:      "Leo Tolstoy",
		Quantity:    6,
		Rating:      4.6,
		Description: "A married aristocrat begins a life-shattering affair with Count Vronsky.",
		CoverURL:    "/covers/anna-karenina.jpg",
	},
	{
		ID:          5,
		Title:       "Dead Souls",
		Author:      "Nikolai Gogol",
		Quantity:    2,
		Rating:      4.4,
		Description: "Chichikov travels provincial Russia buying title to deceased serfs.",
		CoverURL:    "/covers/dead-souls.jpg",
	},
	{
		ID:          6,
		Title:       "Fathers and Sons",
		Author:      "Ivan Turgenev",
		Quantity:    4,
		Rating:      4.3,
		Description: "A young nihilist collides with the older generation's values.",
		CoverURL:    "/covers/fathers-and-sons.jpg",
	},
	{
		ID:          7,
		Title:       "The Brothers Karamazov",
		Author:      "Fyodor Dostoevsky",
		Quantity:    5,
		Rating:      4.8,
		Description: "Three brothers and their father's murder, faith against doubt.",
		CoverURL:    "/covers/brothers-karamazov.jpg",
	},
	{
		ID:          8,
		Title:       "Eugene Onegin",
		Author:      "Alexander Pushkin",
		Quantity:    3,
		Rating:      4.5,
		Description: "A bored dandy rejects love and duels his only friend, in verse.",
		CoverURL:    "/covers/eugene-onegin.jpg",
	},
	{
		ID:          9,
		Title:       "Doctor Zhivago",
		Author:      "Boris Pasternak",
		Quantity:    2,
		Rating:      4.2,
		Description: "A physician-poet is swept through revolution and civil war.",
		CoverURL:    "/covers/doctor-zhivago.jpg",
	},
	{
		ID:          10,
		Title:       "We",
		Author:      "Yevgeny Zamyatin",
		Quantity:    4,
		Rating:      4.4,
		Description: "In the One State, citizens live by the Table of Hours until D-503 meets I-330.",
		CoverURL:    "/covers/we.jpg",
	},
}
