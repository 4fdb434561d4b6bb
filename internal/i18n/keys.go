// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthAccountInactive    = "auth.account_inactive"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthRegisterSuccess    = "auth.register_success"

	// Catalog
	KeyProdutoNotFound = "produto.not_found"
	KeyProdutoCreated  = "produto.created"
	KeyProdutoUpdated  = "produto.updated"
	KeyProdutoDeleted  = "produto.deleted"

	// Cart
	KeyCarrinhoNotFound = "carrinho.not_found"
	KeyCarrinhoVazio    = "carrinho.vazio"
	KeyItemNotFound     = "item.not_found"
	KeyItemAdicionado   = "item.adicionado"
	KeyItemRemovido     = "item.removido"

	// Checkout
	KeyCheckoutCEPForaArea     = "checkout.cep_fora_area"
	KeyCheckoutNaoPreparado    = "checkout.nao_preparado"
	KeyCheckoutEstoqueFaltando = "checkout.estoque_insuficiente"
	KeyCheckoutConcluido       = "checkout.concluido"

	// Orders
	KeyPedidoNotFound = "pedido.not_found"

	// Cards
	KeyCartaoNotFound  = "cartao.not_found"
	KeyCartaoDuplicado = "cartao.duplicado"
	KeyCartaoCriado    = "cartao.criado"
	KeyCartaoRemovido  = "cartao.removido"

	// Stores
	KeyLojaNotFound = "loja.not_found"

	// Inventory
	KeyArmazemNotFound   = "armazem.not_found"
	KeyEstoqueAtualizado = "estoque.atualizado"

	// Admin
	KeyAdminAccessDenied = "admin.access_denied"
	KeyStaffAccessDenied = "staff.access_denied"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"

	// Rate limiting
	KeyRateLimitExceeded = "rate_limit.exceeded"
)
