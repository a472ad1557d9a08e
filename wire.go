//go:build wireinject

package taskhub

import (
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/securetaskhub/taskhub/core"
	"github.com/securetaskhub/taskhub/util"
	"github.com/securetaskhub/taskhub/x/auth"
	"github.com/securetaskhub/taskhub/x/policy"
	"github.com/securetaskhub/taskhub/x/task"
	"github.com/securetaskhub/taskhub/x/token"
)

// Lv0
var policyServiceProvider = wire.NewSet(policy.NewService)
var tokenServiceProvider = wire.NewSet(token.NewService, token.NewRepository)

// Lv1
var taskServiceProvider = wire.NewSet(task.NewService, task.NewRepository, SetupPolicyService)
var authServiceProvider = wire.NewSet(auth.NewService, SetupTokenService, SetupPolicyService)

func SetupPolicyService(config util.Config) core.PolicyService {
	wire.Build(policyServiceProvider)
	return nil
}

func SetupTokenService(rdb *redis.Client, config util.Config) core.TokenService {
	wire.Build(tokenServiceProvider)
	return nil
}

func SetupTaskService(db *gorm.DB, config util.Config) core.TaskService {
	wire.Build(taskServiceProvider)
	return nil
}

func SetupAuthService(rdb *redis.Client, identity core.IdentityProvider, config util.Config) core.AuthService {
	wire.Build(authServiceProvider)
	return nil
}
