package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"

	"github.com/securetaskhub/taskhub/core"
)

// IdentifySubject resolves a Bearer token into a subject and stores it on
// the request context. A missing or unverifiable token is not an error at
// this layer: the request proceeds anonymous and the policy decides.
func (s *service) IdentifySubject(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, span := tracer.Start(c.Request().Context(), "Auth.Service.IdentifySubject")
		defer span.End()

		authHeader := c.Request().Header.Get("authorization")

		if authHeader != "" {
			split := strings.Split(authHeader, " ")
			if len(split) != 2 {
				span.RecordError(fmt.Errorf("invalid authentication header"))
				goto skip
			}

			{
				authType, token := split[0], split[1]
				if authType != "Bearer" {
					span.RecordError(fmt.Errorf("only Bearer is acceptable"))
					goto skip
				}

				subject, err := s.token.Verify(ctx, token)
				if err != nil {
					span.RecordError(err)
					goto skip
				}

				c.Set(core.SubjectCtxKey, &subject)
				c.Set(core.RequesterIdCtxKey, subject.ID)
				c.Set(core.TokenCtxKey, token)
				span.SetAttributes(attribute.String("RequesterId", subject.ID))
				span.SetAttributes(attribute.StringSlice("RequesterRoles", subject.Roles))
			}
		}
	skip:
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

// Restrict rejects requests whose subject does not satisfy the given principal
func (s *service) Restrict(principal int) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, span := tracer.Start(c.Request().Context(), "Auth.Service.Restrict")
			defer span.End()

			subject, ok := c.Get(core.SubjectCtxKey).(*core.Subject)

			switch principal {
			case ISAUTHED:
				if !ok || subject.ID == "" {
					return c.JSON(http.StatusUnauthorized, echo.Map{
						"error":  "you are not authorized to perform this action",
						"detail": "you are not authenticated",
					})
				}

			case ISADMIN:
				if !ok || subject.ID == "" {
					return c.JSON(http.StatusUnauthorized, echo.Map{
						"error":  "you are not authorized to perform this action",
						"detail": "you are not authenticated",
					})
				}
				// an ownerless descriptor is only readable by admins
				if s.policy.Evaluate(ctx, subject, core.CapabilityRead, &core.Resource{}) != core.DecisionAllow {
					return c.JSON(http.StatusForbidden, echo.Map{
						"error":  "you are not authorized to perform this action",
						"detail": "you are not admin",
					})
				}
			}

			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
