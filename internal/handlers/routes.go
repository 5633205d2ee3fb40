package handlers

import (
	"github.com/alimgiray/demography/internal/services"
	"github.com/gin-gonic/gin"
)

// RegisterPersonRoutes mounts the resource, demography, export and RPC routes
func RegisterPersonRoutes(router gin.IRouter, personService *services.PersonService, defaultPageSize int) {
	personHandler := NewPersonHandler(personService, defaultPageSize)
	demographyHandler := NewDemographyHandler(personService)
	exportHandler := NewExportHandler(personService)
	rpcHandler := NewRPCHandler(personService)

	api := router.Group("/api")
	{
		persons := api.Group("/persons")
		persons.GET("", personHandler.ListPersons)
		persons.POST("", personHandler.CreatePerson)
		persons.GET("/export", exportHandler.ExportPersons)
		persons.GET("/count", personHandler.TotalCount)
		persons.GET("/average-weight", personHandler.AverageWeight)
		persons.GET("/count-by-location", personHandler.CountByLocation)
		persons.GET("/by-height", personHandler.PersonsByHeight)
		persons.GET("/:id", personHandler.GetPerson)
		persons.PUT("/:id", personHandler.UpdatePerson)
		persons.DELETE("/:id", personHandler.DeletePerson)

		demography := api.Group("/demography")
		demography.GET("/hair-color/:hairColor", demographyHandler.CountByHairColor)
		demography.GET("/nationality/:nationality", demographyHandler.CountByNationality)
		demography.GET("/nationality/:nationality/eye-color/:eyeColor/percentage", demographyHandler.PercentageByNationalityAndEyeColor)
	}

	router.POST("/rpc/:operation", rpcHandler.Dispatch)
}

// RegisterProxyRoutes mounts the forwarded demography routes of the proxy
func RegisterProxyRoutes(router gin.IRouter, forwarder DemographyForwarder) {
	proxyHandler := NewProxyHandler(forwarder)

	demography := router.Group("/api/proxy/demography")
	{
		demography.GET("/hair-color/:hairColor", proxyHandler.CountByHairColor)
		demography.GET("/nationality/:nationality/eye-color/:eyeColor/percentage", proxyHandler.PercentageByNationalityAndEyeColor)
	}
}
