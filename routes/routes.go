package routes

import (
	"sportsbet/controllers/bets"
	"sportsbet/controllers/user"
	"sportsbet/middlewares"

	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App) {
	userroutes := app.Group("/user", middlewares.UserAuthMiddleware)
	userroutes.Post("/balance", user.CheckUserBalance)

	betroutes := app.Group("/bets", middlewares.UserAuthMiddleware)
	betroutes.Post("/validate", bets.ValidateBet)
	betroutes.Post("/", bets.PlaceBet)
	betroutes.Get("/", bets.ListBets)
	betroutes.Get("/:id", bets.GetBet)
	betroutes.Get("/:id/cashout", bets.CashoutQuote)
	betroutes.Post("/:id/cashout", bets.ExecuteCashout)

	sliproutes := app.Group("/betslip", middlewares.UserAuthMiddleware)
	sliproutes.Post("/", bets.SaveBetslip)
	sliproutes.Get("/:code", bets.ResolveBetslip)

	app.Get("/booking/:code", middlewares.UserAuthMiddleware, bets.ResolveBookingCode)
}
